package store

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/canvas/pkg/types"
)

// encodeList serializes a whole list as a JSON array. A nil list encodes
// as [] so that an emptied list never round-trips to null.
func encodeList[T any](list []T) ([]byte, error) {
	if list == nil {
		list = []T{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encoding list: %w", err)
	}
	return data, nil
}

// decodeList parses a JSON array into a list. Unknown fields are ignored so
// blobs written by other versions still load.
func decodeList[T any](data []byte) ([]T, error) {
	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decoding list: %w", err)
	}
	return list, nil
}

// EncodePieces serializes pieces in the persisted format.
func EncodePieces(pieces []types.ArtPiece) ([]byte, error) {
	return encodeList(pieces)
}

// DecodePieces parses the persisted format for pieces.
func DecodePieces(data []byte) ([]types.ArtPiece, error) {
	return decodeList[types.ArtPiece](data)
}

// EncodeGalleries serializes galleries in the persisted format.
func EncodeGalleries(galleries []types.Gallery) ([]byte, error) {
	return encodeList(galleries)
}

// DecodeGalleries parses the persisted format for galleries.
func DecodeGalleries(data []byte) ([]types.Gallery, error) {
	return decodeList[types.Gallery](data)
}
