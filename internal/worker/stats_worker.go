package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sinapsiscode/cursos-exam-backend/internal/config"
	"github.com/sinapsiscode/cursos-exam-backend/internal/service"
)

const (
	statsSnapshotTTL = 30 * time.Minute
	eventPollTimeout = 1 * time.Second
	errorBackoff     = 3 * time.Second
)

// StatsWorker keeps the admin stats snapshot warm in Redis. It rebuilds the
// snapshot on every redemption event and at least once per refresh interval,
// so the dashboard read path never scans the full store.
type StatsWorker struct {
	stats    *service.StatsService
	rdb      *redis.Client
	interval time.Duration
	log      zerolog.Logger
}

// NewStatsWorker creates a new StatsWorker.
func NewStatsWorker(stats *service.StatsService, rdb *redis.Client, interval time.Duration, log zerolog.Logger) *StatsWorker {
	return &StatsWorker{
		stats:    stats,
		rdb:      rdb,
		interval: interval,
		log:      log.With().Str("component", "stats_worker").Logger(),
	}
}

// Start runs the worker loop until ctx is cancelled.
func (w *StatsWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("StatsWorker started")

	w.refresh(ctx)
	lastRefresh := time.Now()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("StatsWorker stopped")
			return
		default:
		}

		item, err := w.rdb.BLPop(ctx, eventPollTimeout, config.WorkerKey.RedemptionEventsQueue).Result()
		switch {
		case err == nil && len(item) == 2:
			// Drain any burst of redemptions into a single rebuild.
			w.drainQueue(ctx)
			w.refresh(ctx)
			lastRefresh = time.Now()
		case err != nil && err != redis.Nil && ctx.Err() == nil:
			// Real Redis error (e.g., connection lost)
			w.log.Error().Err(err).Msg("Redis connection error, sleeping 3s")
			time.Sleep(errorBackoff)
		}

		if time.Since(lastRefresh) >= w.interval {
			w.refresh(ctx)
			lastRefresh = time.Now()
		}
	}
}

func (w *StatsWorker) drainQueue(ctx context.Context) {
	for {
		n, err := w.rdb.LPop(ctx, config.WorkerKey.RedemptionEventsQueue).Result()
		if err != nil || n == "" {
			return
		}
	}
}

func (w *StatsWorker) refresh(ctx context.Context) {
	stats, err := w.stats.ExamStats(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Failed to compute exam stats")
		return
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		w.log.Error().Err(err).Msg("Failed to marshal exam stats")
		return
	}

	if err := w.rdb.Set(ctx, config.CacheKey.ExamStatsSnapshotKey(), payload, statsSnapshotTTL).Err(); err != nil {
		w.log.Error().Err(err).Msg("Failed to cache stats snapshot")
		return
	}

	w.log.Debug().
		Int("total_exams", stats.TotalExams).
		Int("discounts_used", stats.DiscountsUsed).
		Msg("Stats snapshot refreshed")
}
