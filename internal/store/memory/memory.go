// Package memory provides an in-memory store backend for tests and ephemeral
// runs. Values survive only as long as the process.
package memory

import (
	"context"
	"sync"

	"github.com/Famanien/University-Hub/internal/store"
)

// Store implements store.KV over a mutex-guarded map.
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// Open returns an empty in-memory store.
func Open() *Store {
	return &Store{values: make(map[string][]byte)}
}

// Get returns a copy of the value for key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, store.ErrNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores a copy of value under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

// Clear removes every key.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.values = make(map[string][]byte)
	s.mu.Unlock()
	return nil
}

// Close is a no-op for the in-memory backend.
func (s *Store) Close() error {
	return nil
}
