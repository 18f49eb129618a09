package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is a DocumentStore backed by a single documents table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres document store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Get returns the raw document for key.
func (s *Postgres) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var doc json.RawMessage
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM documents WHERE key = $1`, key,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get document %q: %w", key, err)
	}
	return doc, nil
}

// Put upserts the document for key.
func (s *Postgres) Put(ctx context.Context, key string, doc json.RawMessage) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO documents (key, value, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, doc)
	if err != nil {
		return fmt.Errorf("put document %q: %w", key, err)
	}
	return nil
}
