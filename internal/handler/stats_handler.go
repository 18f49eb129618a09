package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sinapsiscode/cursos-exam-backend/internal/config"
	"github.com/sinapsiscode/cursos-exam-backend/internal/model"
	"github.com/sinapsiscode/cursos-exam-backend/internal/response"
	"github.com/sinapsiscode/cursos-exam-backend/internal/service"
)

// StatsHandler serves the admin exam report, preferring the worker-built
// Redis snapshot and computing live on a miss.
type StatsHandler struct {
	stats *service.StatsService
	rdb   *redis.Client
	log   zerolog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats *service.StatsService, rdb *redis.Client, log zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		stats: stats,
		rdb:   rdb,
		log:   log.With().Str("component", "stats_handler").Logger(),
	}
}

// GetExamStats godoc
// GET /api/v1/admin/exam-stats
func (h *StatsHandler) GetExamStats(c *gin.Context) {
	ctx := c.Request.Context()

	if data, err := h.rdb.Get(ctx, config.CacheKey.ExamStatsSnapshotKey()).Bytes(); err == nil {
		var stats model.ExamStats
		unmarshalErr := json.Unmarshal(data, &stats)
		if unmarshalErr == nil {
			response.Success(c, http.StatusOK, gin.H{"stats": stats})
			return
		}
		h.log.Warn().Err(unmarshalErr).Msg("Discarding unreadable stats snapshot")
	}

	stats, err := h.stats.ExamStats(ctx)
	if err != nil {
		failStorage(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}
