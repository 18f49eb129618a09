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

// resultsDoc is the versioned schema of the exam_results document: one
// initial exam result slot per user id.
type resultsDoc struct {
	SchemaVersion int                         `json:"schemaVersion"`
	Results       map[string]model.ExamResult `json:"results"`
}

// ResultRepository reads and writes per-user initial exam results.
type ResultRepository struct {
	store store.DocumentStore
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(st store.DocumentStore) *ResultRepository {
	return &ResultRepository{store: st}
}

func (r *ResultRepository) load(ctx context.Context) (*resultsDoc, error) {
	key := config.StoreKey.ExamResults()
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &resultsDoc{SchemaVersion: 1, Results: make(map[string]model.ExamResult)}, nil
		}
		return nil, err
	}

	var doc resultsDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &store.CorruptError{Key: key, Err: err}
	}
	if doc.Results == nil {
		doc.Results = make(map[string]model.ExamResult)
	}
	return &doc, nil
}

// Get returns a user's initial exam result, or nil when the user has not
// attempted the exam.
func (r *ResultRepository) Get(ctx context.Context, userID string) (*model.ExamResult, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	res, ok := doc.Results[userID]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

// Put overwrites a user's initial exam result. The caller must hold the
// exam_results key lock.
func (r *ResultRepository) Put(ctx context.Context, userID string, res model.ExamResult) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	doc.Results[userID] = res

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal exam results: %w", err)
	}
	return r.store.Put(ctx, config.StoreKey.ExamResults(), raw)
}

// All returns every user's initial exam result keyed by user id.
func (r *ResultRepository) All(ctx context.Context) (map[string]model.ExamResult, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Results, nil
}
