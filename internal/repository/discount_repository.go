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

// ledgerDoc is the versioned schema of the discount_codes document: an
// ever-growing mapping from code string to its record.
type ledgerDoc struct {
	SchemaVersion int                           `json:"schemaVersion"`
	Codes         map[string]model.DiscountCode `json:"codes"`
}

// DiscountRepository reads and writes the discount code ledger.
type DiscountRepository struct {
	store store.DocumentStore
}

// NewDiscountRepository creates a new DiscountRepository.
func NewDiscountRepository(st store.DocumentStore) *DiscountRepository {
	return &DiscountRepository{store: st}
}

func (r *DiscountRepository) load(ctx context.Context) (*ledgerDoc, error) {
	key := config.StoreKey.DiscountCodes()
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &ledgerDoc{SchemaVersion: 1, Codes: make(map[string]model.DiscountCode)}, nil
		}
		return nil, err
	}

	var doc ledgerDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &store.CorruptError{Key: key, Err: err}
	}
	if doc.Codes == nil {
		doc.Codes = make(map[string]model.DiscountCode)
	}
	return &doc, nil
}

// Get returns the record for a code, or nil when the code does not exist.
func (r *DiscountRepository) Get(ctx context.Context, code string) (*model.DiscountCode, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	dc, ok := doc.Codes[code]
	if !ok {
		return nil, nil
	}
	return &dc, nil
}

// Put inserts or updates one code record. The caller must hold the
// discount_codes key lock.
func (r *DiscountRepository) Put(ctx context.Context, dc model.DiscountCode) error {
	doc, err := r.load(ctx)
	if err != nil {
		return err
	}
	doc.Codes[dc.Code] = dc

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal discount codes: %w", err)
	}
	return r.store.Put(ctx, config.StoreKey.DiscountCodes(), raw)
}

// All returns the full ledger keyed by code.
func (r *DiscountRepository) All(ctx context.Context) (map[string]model.DiscountCode, error) {
	doc, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Codes, nil
}
