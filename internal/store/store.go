package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a document key has never been written.
var ErrNotFound = errors.New("document not found")

// CorruptError indicates a stored document failed to parse. It is surfaced
// to callers instead of being silently replaced with defaults, so they can
// decide whether to reseed.
type CorruptError struct {
	Key string
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt document %q: %v", e.Key, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// DocumentStore is a key → JSON document store. Every logical entity of the
// exam subsystem maps to exactly one key; reads and writes are whole-document.
type DocumentStore interface {
	// Get returns the raw document for key, or ErrNotFound.
	Get(ctx context.Context, key string) (json.RawMessage, error)
	// Put overwrites the document for key.
	Put(ctx context.Context, key string, doc json.RawMessage) error
}
