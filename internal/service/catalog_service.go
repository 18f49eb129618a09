package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/sinapsiscode/cursos-exam-backend/internal/config"
	"github.com/sinapsiscode/cursos-exam-backend/internal/model"
	"github.com/sinapsiscode/cursos-exam-backend/internal/repository"
	"github.com/sinapsiscode/cursos-exam-backend/internal/store"
)

// CatalogService resolves exam definitions and their question sets. Seeding
// is an explicit startup step (EnsureSeeded), never a hidden side effect of
// a read.
type CatalogService struct {
	examRepo *repository.ExamRepository
	locks    *store.KeyMutex
	log      zerolog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(examRepo *repository.ExamRepository, locks *store.KeyMutex, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		examRepo: examRepo,
		locks:    locks,
		log:      log.With().Str("component", "catalog_service").Logger(),
	}
}

// EnsureSeeded writes the built-in default exam set if the catalog document
// has never been written. Idempotent: a seeded (even emptied) catalog is
// left alone. A corrupt catalog is surfaced, not reseeded; the operator
// decides.
func (s *CatalogService) EnsureSeeded(ctx context.Context) error {
	unlock := s.locks.Lock(config.StoreKey.CourseExams())
	defer unlock()

	_, err := s.examRepo.List(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	defaults := defaultExamCatalog()
	if err := s.examRepo.Replace(ctx, defaults); err != nil {
		return err
	}
	s.log.Info().Int("exams", len(defaults)).Msg("Exam catalog seeded with defaults")
	return nil
}

// ListExams returns all exam definitions in storage order. An unseeded
// catalog yields an empty list.
func (s *CatalogService) ListExams(ctx context.Context) ([]model.ExamDefinition, error) {
	exams, err := s.examRepo.List(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []model.ExamDefinition{}, nil
		}
		return nil, err
	}
	if exams == nil {
		exams = []model.ExamDefinition{}
	}
	return exams, nil
}

// ExamByCourse returns the first active course exam for courseID, or nil.
func (s *CatalogService) ExamByCourse(ctx context.Context, courseID int) (*model.ExamDefinition, error) {
	exams, err := s.ListExams(ctx)
	if err != nil {
		return nil, err
	}
	for i := range exams {
		e := &exams[i]
		if e.Type == model.ExamTypeCourse && e.IsActive && e.CourseID != nil && *e.CourseID == courseID {
			return e, nil
		}
	}
	return nil, nil
}

// ExamByID returns the first exam definition matching examID, or nil.
func (s *CatalogService) ExamByID(ctx context.Context, examID string) (*model.ExamDefinition, error) {
	exams, err := s.ListExams(ctx)
	if err != nil {
		return nil, err
	}
	for i := range exams {
		if exams[i].ID == examID {
			return &exams[i], nil
		}
	}
	return nil, nil
}

// PlacementQuestions resolves the initial exam's question set. The fallback
// chain supports both the per-exam catalog and the older flat question
// document without a migration step: (a) the active initial exam's questions,
// (b) the legacy exam_questions document, (c) the built-in default set.
func (s *CatalogService) PlacementQuestions(ctx context.Context) ([]model.Question, error) {
	exams, err := s.ListExams(ctx)
	if err != nil {
		return nil, err
	}
	for i := range exams {
		e := &exams[i]
		if e.Type == model.ExamTypeInitial && e.IsActive && len(e.Questions) > 0 {
			return e.Questions, nil
		}
	}

	legacy, err := s.examRepo.LegacyQuestions(ctx)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if len(legacy) > 0 {
		return legacy, nil
	}

	return defaultPlacementQuestions(), nil
}

// ReplaceExams overwrites the whole catalog. Used by the admin dashboard.
func (s *CatalogService) ReplaceExams(ctx context.Context, exams []model.ExamDefinition) error {
	unlock := s.locks.Lock(config.StoreKey.CourseExams())
	defer unlock()

	if err := s.examRepo.Replace(ctx, exams); err != nil {
		return err
	}
	s.log.Info().Int("exams", len(exams)).Msg("Exam catalog replaced")
	return nil
}
