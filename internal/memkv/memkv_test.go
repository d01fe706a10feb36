package memkv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/canvas/pkg/types"
)

func TestStore(t *testing.T) {
	s := New()

	_, err := s.Get(types.PiecesKey)
	assert.ErrorIs(t, err, types.ErrKeyNotFound)

	value := []byte("blob")
	require.NoError(t, s.Set(types.PiecesKey, value))
	value[0] = 'X'

	got, err := s.Get(types.PiecesKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("blob"), got, "Set stores a copy")

	got[0] = 'Y'
	again, _ := s.Get(types.PiecesKey)
	assert.Equal(t, []byte("blob"), again, "Get returns a copy")

	require.NoError(t, s.Remove(types.PiecesKey))
	require.NoError(t, s.Remove(types.PiecesKey))
	_, err = s.Get(types.PiecesKey)
	assert.ErrorIs(t, err, types.ErrKeyNotFound)
}

func TestStoreClosed(t *testing.T) {
	s := New()
	require.NoError(t, s.Close())

	_, err := s.Get(types.PiecesKey)
	assert.ErrorIs(t, err, types.ErrDetached)
	assert.ErrorIs(t, s.Set(types.PiecesKey, nil), types.ErrDetached)
	assert.ErrorIs(t, s.Remove(types.PiecesKey), types.ErrDetached)
}

func TestStoreEmptyKey(t *testing.T) {
	s := New()
	_, err := s.Get("")
	assert.ErrorIs(t, err, types.ErrInvalidKey)
}
