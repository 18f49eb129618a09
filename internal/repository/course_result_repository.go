package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sinapsiscode/cursos-exam-backend/internal/config"
	"github.com/sinapsiscode/cursos-exam-backend/internal/model"
	"github.com/sinapsiscode/cursos-exam-backend/internal/store"
)

// courseResultsDoc is the versioned schema of the course_exam_results
// document. Attempts are kept as an append-only list so insertion order
// survives serialization; best-result tie breaking depends on it.
type courseResultsDoc struct {
	SchemaVersion int                      `json:"schemaVersion"`
	Results       []model.CourseExamResult `json:"results"`
}

// CourseResultRepository reads and appends course exam attempts.
type CourseResultRepository struct {
	store store.DocumentStore
}

// NewCourseResultRepository creates a new CourseResultRepository.
func NewCourseResultRepository(st store.DocumentStore) *CourseResultRepository {
	return &CourseResultRepository{store: st}
}

func (r *CourseResultRepository) load(ctx context.Context) (*courseResultsDoc, error) {
	key := config.StoreKey.CourseExamResults()
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &courseResultsDoc{SchemaVersion: 1}, nil
		}
		return nil, err
	}

	var doc courseResultsDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &store.CorruptError{Key: key, Err: err}
	}
	return &doc, nil
}

// Append adds one attempt to the document. The caller must hold the
// course_exam_results key lock.
func (r *CourseResultRepository) Append(ctx context.Context, res model.CourseExamResult) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	doc.Results = append(doc.Results, res)

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal course exam results: %w", err)
	}
	return r.store.Put(ctx, config.StoreKey.CourseExamResults(), raw)
}

// ListByUserCourse returns a user's attempts for one course in insertion order.
func (r *CourseResultRepository) ListByUserCourse(ctx context.Context, userID string, courseID int) ([]model.CourseExamResult, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	var out []model.CourseExamResult
	for _, res := range doc.Results {
		if res.UserID == userID && res.CourseID == courseID {
			out = append(out, res)
		}
	}
	return out, nil
}
