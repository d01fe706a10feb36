// Package kv provides the public factory for key-value storage backends.
// This package exposes backend selection while keeping implementations
// internal.
package kv

import (
	"fmt"

	"github.com/mesh-intelligence/canvas/internal/filekv"
	"github.com/mesh-intelligence/canvas/internal/memkv"
	"github.com/mesh-intelligence/canvas/internal/sqlite"
	"github.com/mesh-intelligence/canvas/pkg/types"
)

// Open validates cfg and returns an open KVStore for the selected backend.
// The caller must Close it.
//
// Example:
//
//	store, err := kv.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".canvas-db",
//	})
//	defer store.Close()
func Open(cfg types.Config) (types.KVStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case types.BackendSQLite:
		b := sqlite.NewBackend()
		if err := b.Attach(cfg); err != nil {
			return nil, fmt.Errorf("attach sqlite: %w", err)
		}
		return b, nil
	case types.BackendFile:
		s, err := filekv.Open(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return s, nil
	case types.BackendMemory:
		return memkv.New(), nil
	default:
		return nil, types.ErrBackendUnknown
	}
}

// Location describes where store keeps its data: the database file for
// SQLite, the directory for the file backend, "memory" otherwise.
func Location(store types.KVStore) string {
	switch s := store.(type) {
	case *sqlite.Backend:
		return s.Path()
	case *filekv.Store:
		return s.Dir()
	default:
		return types.BackendMemory
	}
}
