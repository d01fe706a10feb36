// Package memkv implements an in-memory key-value backend. Nothing survives
// the process; it backs tests and dry runs.
package memkv

import (
	"sync"

	"github.com/mesh-intelligence/canvas/pkg/types"
)

// Store implements types.KVStore on a map.
type Store struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// New returns an empty Store.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, types.ErrInvalidKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, types.ErrDetached
	}
	v, ok := s.data[key]
	if !ok {
		return nil, types.ErrKeyNotFound
	}
	return append([]byte{}, v...), nil
}

// Set stores a copy of value under key.
func (s *Store) Set(key string, value []byte) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrDetached
	}
	s.data[key] = append([]byte{}, value...)
	return nil
}

// Remove deletes key. Removing a missing key succeeds.
func (s *Store) Remove(key string) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrDetached
	}
	delete(s.data, key)
	return nil
}

// Close marks the store closed. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
