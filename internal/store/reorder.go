package store

import (
	"fmt"

	"github.com/mesh-intelligence/canvas/pkg/types"
)

// moveOffsets returns a new list with the elements at offsets from moved so
// that they sit before the element originally at offset to (or at the end
// when to == len(list)). Moved elements keep their relative order.
// Duplicate offsets count once.
func moveOffsets[T any](list []T, from []int, to int) ([]T, error) {
	n := len(list)
	if to < 0 || to > n {
		return nil, fmt.Errorf("%w: destination %d (len %d)", types.ErrInvalidIndex, to, n)
	}
	selected := make([]bool, n)
	for _, i := range from {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("%w: source %d (len %d)", types.ErrInvalidIndex, i, n)
		}
		selected[i] = true
	}

	before := make([]T, 0, n)
	var moved, after []T
	for i, v := range list {
		switch {
		case selected[i]:
			moved = append(moved, v)
		case i < to:
			before = append(before, v)
		default:
			after = append(after, v)
		}
	}
	result := append(before, moved...)
	return append(result, after...), nil
}
