package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sinapsiscode/cursos-exam-backend/internal/config"
	"github.com/sinapsiscode/cursos-exam-backend/internal/store"
)

// dismissalsDoc is the versioned schema of the exam_prompt_dismissals
// document: the set of users who closed the placement exam banner.
type dismissalsDoc struct {
	SchemaVersion int             `json:"schemaVersion"`
	Dismissed     map[string]bool `json:"dismissed"`
}

// DismissalRepository tracks which users dismissed the placement exam prompt.
type DismissalRepository struct {
	store store.DocumentStore
}

// NewDismissalRepository creates a new DismissalRepository.
func NewDismissalRepository(st store.DocumentStore) *DismissalRepository {
	return &DismissalRepository{store: st}
}

func (r *DismissalRepository) load(ctx context.Context) (*dismissalsDoc, error) {
	key := config.StoreKey.ExamPromptDismissals()
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &dismissalsDoc{SchemaVersion: 1, Dismissed: make(map[string]bool)}, nil
		}
		return nil, err
	}

	var doc dismissalsDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &store.CorruptError{Key: key, Err: err}
	}
	if doc.Dismissed == nil {
		doc.Dismissed = make(map[string]bool)
	}
	return &doc, nil
}

// IsDismissed reports whether a user closed the prompt.
func (r *DismissalRepository) IsDismissed(ctx context.Context, userID string) (bool, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	return doc.Dismissed[userID], nil
}

// Dismiss records that a user closed the prompt. The caller must hold the
// exam_prompt_dismissals key lock.
func (r *DismissalRepository) Dismiss(ctx context.Context, userID string) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	doc.Dismissed[userID] = true

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal prompt dismissals: %w", err)
	}
	return r.store.Put(ctx, config.StoreKey.ExamPromptDismissals(), raw)
}
