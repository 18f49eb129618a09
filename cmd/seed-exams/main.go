package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sinapsiscode/cursos-exam-backend/internal/config"
	"github.com/sinapsiscode/cursos-exam-backend/internal/database"
	"github.com/sinapsiscode/cursos-exam-backend/internal/logger"
	"github.com/sinapsiscode/cursos-exam-backend/internal/repository"
	"github.com/sinapsiscode/cursos-exam-backend/internal/service"
	"github.com/sinapsiscode/cursos-exam-backend/internal/store"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	docs := store.NewPostgres(pool)
	examRepo := repository.NewExamRepository(docs)
	catalogService := service.NewCatalogService(examRepo, store.NewKeyMutex(), log)

	fmt.Println("=== Seeding Exam Catalog ===")

	if err := catalogService.EnsureSeeded(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed exam catalog")
	}

	exams, err := catalogService.ListExams(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read exam catalog")
	}

	fmt.Printf("Catalog contains %d exams:\n", len(exams))
	for _, e := range exams {
		course := "-"
		if e.CourseID != nil {
			course = fmt.Sprintf("%d", *e.CourseID)
		}
		fmt.Printf("  %-16s type=%-8s course=%-3s questions=%d active=%t\n",
			e.ID, e.Type, course, len(e.Questions), e.IsActive)
	}
}
