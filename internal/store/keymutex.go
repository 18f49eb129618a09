package store

import "sync"

// KeyMutex serializes read-modify-write cycles per document key. Concurrent
// requests mutating the same key (a result overwrite, a code redemption)
// must hold the key's lock so neither observes a stale document.
type KeyMutex struct {
	mu   sync.Mutex
	keys map[string]*sync.Mutex
}

// NewKeyMutex creates an empty KeyMutex.
func NewKeyMutex() *KeyMutex {
	return &KeyMutex{keys: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (m *KeyMutex) Lock(key string) func() {
	m.mu.Lock()
	l, ok := m.keys[key]
	if !ok {
		l = &sync.Mutex{}
		m.keys[key] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock
}
