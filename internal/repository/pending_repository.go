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

// pendingDoc is the versioned schema of the pending_exam_results document:
// one transient attempt per guest session id, cleared once claimed.
type pendingDoc struct {
	SchemaVersion int                          `json:"schemaVersion"`
	Pending       map[string]model.ExamAttempt `json:"pending"`
}

// PendingRepository holds exam attempts of unauthenticated visitors.
type PendingRepository struct {
	store store.DocumentStore
}

// NewPendingRepository creates a new PendingRepository.
func NewPendingRepository(st store.DocumentStore) *PendingRepository {
	return &PendingRepository{store: st}
}

func (r *PendingRepository) load(ctx context.Context) (*pendingDoc, error) {
	key := config.StoreKey.PendingExamResults()
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &pendingDoc{SchemaVersion: 1, Pending: make(map[string]model.ExamAttempt)}, nil
		}
		return nil, err
	}

	var doc pendingDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &store.CorruptError{Key: key, Err: err}
	}
	if doc.Pending == nil {
		doc.Pending = make(map[string]model.ExamAttempt)
	}
	return &doc, nil
}

func (r *PendingRepository) save(ctx context.Context, doc *pendingDoc) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal pending results: %w", err)
	}
	return r.store.Put(ctx, config.StoreKey.PendingExamResults(), raw)
}

// Get returns the pending attempt for a session, or nil when there is none.
func (r *PendingRepository) Get(ctx context.Context, sessionID string) (*model.ExamAttempt, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	attempt, ok := doc.Pending[sessionID]
	if !ok {
		return nil, nil
	}
	return &attempt, nil
}

// Put stores the pending attempt for a session, replacing any previous one.
func (r *PendingRepository) Put(ctx context.Context, sessionID string, attempt model.ExamAttempt) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	doc.Pending[sessionID] = attempt
	return r.save(ctx, doc)
}

// Delete clears the pending slot for a session.
func (r *PendingRepository) Delete(ctx context.Context, sessionID string) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	delete(doc.Pending, sessionID)
	return r.save(ctx, doc)
}
