package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-process DocumentStore used by unit tests and local runs
// without a database.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]json.RawMessage
}

// NewMemory creates an empty in-memory document store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]json.RawMessage)}
}

// Get returns the raw document for key.
func (s *Memory) Get(_ context.Context, key string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make(json.RawMessage, len(doc))
	copy(cp, doc)
	return cp, nil
}

// Put overwrites the document for key.
func (s *Memory) Put(_ context.Context, key string, doc json.RawMessage) error {
	cp := make(json.RawMessage, len(doc))
	copy(cp, doc)
	s.mu.Lock()
	s.docs[key] = cp
	s.mu.Unlock()
	return nil
}
