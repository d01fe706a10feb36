package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/canvas/pkg/types"
)

func TestMoveOffsets(t *testing.T) {
	tests := []struct {
		name string
		from []int
		to   int
		want []string
	}{
		{"last to front", []int{2}, 0, []string{"C", "A", "B"}},
		{"first to end", []int{0}, 3, []string{"B", "C", "A"}},
		{"first before last", []int{0}, 2, []string{"B", "A", "C"}},
		{"onto itself", []int{1}, 1, []string{"A", "B", "C"}},
		{"just after itself", []int{1}, 2, []string{"A", "B", "C"}},
		{"two to front keep order", []int{2, 1}, 0, []string{"B", "C", "A"}},
		{"duplicates count once", []int{0, 0}, 3, []string{"B", "C", "A"}},
		{"empty selection", nil, 1, []string{"A", "B", "C"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := moveOffsets([]string{"A", "B", "C"}, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoveOffsets_OutOfRange(t *testing.T) {
	list := []string{"A", "B", "C"}

	_, err := moveOffsets(list, []int{3}, 0)
	assert.ErrorIs(t, err, types.ErrInvalidIndex)
	_, err = moveOffsets(list, []int{-1}, 0)
	assert.ErrorIs(t, err, types.ErrInvalidIndex)
	_, err = moveOffsets(list, []int{0}, 4)
	assert.ErrorIs(t, err, types.ErrInvalidIndex)
	_, err = moveOffsets(list, []int{0}, -1)
	assert.ErrorIs(t, err, types.ErrInvalidIndex)
}

func TestMoveOffsets_DoesNotMutateInput(t *testing.T) {
	list := []string{"A", "B", "C"}
	_, err := moveOffsets(list, []int{2}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, list)
}
