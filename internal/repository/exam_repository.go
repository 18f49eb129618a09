package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sinapsiscode/cursos-exam-backend/internal/config"
	"github.com/sinapsiscode/cursos-exam-backend/internal/model"
	"github.com/sinapsiscode/cursos-exam-backend/internal/store"
)

// examCatalogDoc is the versioned schema of the course_exams document.
type examCatalogDoc struct {
	SchemaVersion int                    `json:"schemaVersion"`
	Exams         []model.ExamDefinition `json:"exams"`
}

// legacyQuestionsDoc is the versioned schema of the flat exam_questions
// document kept for pre-catalog installs.
type legacyQuestionsDoc struct {
	SchemaVersion int              `json:"schemaVersion"`
	Questions     []model.Question `json:"questions"`
}

// ExamRepository reads and writes the exam catalog documents.
type ExamRepository struct {
	store store.DocumentStore
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(st store.DocumentStore) *ExamRepository {
	return &ExamRepository{store: st}
}

// List returns all exam definitions in storage order. It returns
// store.ErrNotFound when the catalog has never been seeded.
func (r *ExamRepository) List(ctx context.Context) ([]model.ExamDefinition, error) {
	key := config.StoreKey.CourseExams()
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var doc examCatalogDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &store.CorruptError{Key: key, Err: err}
	}
	return doc.Exams, nil
}

// Replace overwrites the whole exam catalog.
func (r *ExamRepository) Replace(ctx context.Context, exams []model.ExamDefinition) error {
	doc := examCatalogDoc{SchemaVersion: 1, Exams: exams}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal exam catalog: %w", err)
	}
	return r.store.Put(ctx, config.StoreKey.CourseExams(), raw)
}

// LegacyQuestions returns the flat placement question document, or
// store.ErrNotFound when no legacy record exists.
func (r *ExamRepository) LegacyQuestions(ctx context.Context) ([]model.Question, error) {
	key := config.StoreKey.ExamQuestions()
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var doc legacyQuestionsDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &store.CorruptError{Key: key, Err: err}
	}
	return doc.Questions, nil
}
