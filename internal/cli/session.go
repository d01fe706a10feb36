// Shared helpers for canvas CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/canvas/internal/store"
	"github.com/mesh-intelligence/canvas/pkg/kv"
	"github.com/mesh-intelligence/canvas/pkg/types"
)

// session is an open catalogue. Callers must Close it.
type session struct {
	*store.Store
	kv types.KVStore
}

// openSession opens the configured backend and loads the catalogue.
func (a *app) openSession() (*session, error) {
	backend, err := kv.Open(a.settings.Store)
	if err != nil {
		return nil, classify(fmt.Errorf("open %s backend: %w", a.settings.Store.Backend, err))
	}

	st, err := store.Open(backend, store.Options{
		CascadePieceRemoval: a.settings.Cascade,
		Logger:              a.log,
	})
	if err != nil {
		backend.Close()
		return nil, sysError(fmt.Errorf("load catalogue: %w", err))
	}
	return &session{Store: st, kv: backend}, nil
}

// Close releases the store and the backend.
func (s *session) Close() error {
	s.Store.Close()
	return s.kv.Close()
}

// withSession opens a session, runs fn and closes the session. Errors from
// fn are classified for the exit code.
func (a *app) withSession(fn func(s *session) error) error {
	s, err := a.openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	return classify(fn(s))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
