// Tests for the SQLite key-value backend.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/canvas/pkg/types"
)

func attachTemp(t *testing.T) (*Backend, string) {
	t.Helper()
	tmpDir := t.TempDir()

	b := NewBackend()
	err := b.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	})
	require.NoError(t, err)
	t.Cleanup(func() { b.Detach() })
	return b, tmpDir
}

func TestBackend_Attach(t *testing.T) {
	b, tmpDir := attachTemp(t)

	// Verify database file created
	dbPath := filepath.Join(tmpDir, dbFileName)
	_, err := os.Stat(dbPath)
	assert.NoError(t, err, "canvas.db not created")
	assert.Equal(t, dbPath, b.Path())

	// Verify double attach fails
	err = b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: tmpDir})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestBackend_AttachValidatesConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{DataDir: t.TempDir()})
	assert.ErrorIs(t, err, types.ErrBackendEmpty)
}

func TestBackend_CreatesMissingDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "db")

	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
	defer b.Detach()

	info, err := os.Stat(dataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestBackend_Detach(t *testing.T) {
	b, _ := attachTemp(t)

	require.NoError(t, b.Detach())

	// Verify idempotent
	assert.NoError(t, b.Detach(), "second Detach should not error")
	assert.NoError(t, b.Close())

	// Verify operations fail after detach
	_, err := b.Get(types.PiecesKey)
	assert.ErrorIs(t, err, types.ErrDetached)
	assert.ErrorIs(t, b.Set(types.PiecesKey, []byte("[]")), types.ErrDetached)
	assert.ErrorIs(t, b.Remove(types.PiecesKey), types.ErrDetached)
	assert.Empty(t, b.Path())
}

func TestBackend_GetSetRemove(t *testing.T) {
	b, _ := attachTemp(t)

	_, err := b.Get(types.PiecesKey)
	assert.ErrorIs(t, err, types.ErrKeyNotFound)

	require.NoError(t, b.Set(types.PiecesKey, []byte(`[{"id":"a"}]`)))
	got, err := b.Get(types.PiecesKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"a"}]`), got)

	// Overwrite replaces the whole blob.
	require.NoError(t, b.Set(types.PiecesKey, []byte(`[]`)))
	got, err = b.Get(types.PiecesKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	require.NoError(t, b.Remove(types.PiecesKey))
	_, err = b.Get(types.PiecesKey)
	assert.ErrorIs(t, err, types.ErrKeyNotFound)

	// Remove is idempotent.
	assert.NoError(t, b.Remove(types.PiecesKey))
}

func TestBackend_EmptyValue(t *testing.T) {
	b, _ := attachTemp(t)

	require.NoError(t, b.Set(types.GalleriesKey, nil))
	got, err := b.Get(types.GalleriesKey)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBackend_InvalidKey(t *testing.T) {
	b, _ := attachTemp(t)

	_, err := b.Get("")
	assert.ErrorIs(t, err, types.ErrInvalidKey)
	assert.ErrorIs(t, b.Set("", []byte("x")), types.ErrInvalidKey)
	assert.ErrorIs(t, b.Remove(""), types.ErrInvalidKey)
}

func TestBackend_DataPersistsAcrossRestart(t *testing.T) {
	tmpDir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}

	b := NewBackend()
	require.NoError(t, b.Attach(config))
	require.NoError(t, b.Set(types.GalleriesKey, []byte(`[{"name":"Landscapes"}]`)))
	require.NoError(t, b.Detach())

	reopened := NewBackend()
	require.NoError(t, reopened.Attach(config))
	defer reopened.Detach()

	got, err := reopened.Get(types.GalleriesKey)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"name":"Landscapes"}]`), got)
}

func TestBackend_ImplementsKVStore(t *testing.T) {
	var _ types.KVStore = NewBackend()
}
