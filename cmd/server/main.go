package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/sinapsiscode/cursos-exam-backend/internal/config"
	"github.com/sinapsiscode/cursos-exam-backend/internal/database"
	"github.com/sinapsiscode/cursos-exam-backend/internal/handler"
	"github.com/sinapsiscode/cursos-exam-backend/internal/logger"
	"github.com/sinapsiscode/cursos-exam-backend/internal/repository"
	"github.com/sinapsiscode/cursos-exam-backend/internal/router"
	"github.com/sinapsiscode/cursos-exam-backend/internal/service"
	"github.com/sinapsiscode/cursos-exam-backend/internal/store"
	"github.com/sinapsiscode/cursos-exam-backend/internal/validator"
	"github.com/sinapsiscode/cursos-exam-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Cursos Exam Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Storage ────────────────────────────────────────────
	docs := store.NewPostgres(pool)
	locks := store.NewKeyMutex()

	// ─── Initialize Repositories ───────────────────────────────────────
	examRepo := repository.NewExamRepository(docs)
	resultRepo := repository.NewResultRepository(docs)
	courseResultRepo := repository.NewCourseResultRepository(docs)
	discountRepo := repository.NewDiscountRepository(docs)
	dismissalRepo := repository.NewDismissalRepository(docs)
	pendingRepo := repository.NewPendingRepository(docs)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg)
	catalogService := service.NewCatalogService(examRepo, locks, log)
	discountService := service.NewDiscountService(discountRepo, resultRepo, locks, cfg.DiscountCodeTTL, log)
	resultService := service.NewResultService(resultRepo, courseResultRepo, dismissalRepo, discountService, locks, log)
	statsService := service.NewStatsService(resultRepo, discountRepo, log)
	pendingService := service.NewPendingService(pendingRepo, resultService, locks, log)

	// ─── Seed Exam Catalog ─────────────────────────────────────────────
	// Seeding is an explicit startup step; reads never write.
	if err := catalogService.EnsureSeeded(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed exam catalog")
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Catalog:  handler.NewCatalogHandler(catalogService),
		Result:   handler.NewResultHandler(resultService, pendingService),
		Discount: handler.NewDiscountHandler(discountService, rdb, log),
		Stats:    handler.NewStatsHandler(statsService, rdb, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	statsWorker := worker.NewStatsWorker(statsService, rdb, cfg.StatsRefreshInterval, log)
	go statsWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
