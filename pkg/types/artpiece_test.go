package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArtPiece(t *testing.T) {
	p := NewArtPiece("Sunset", []byte{0xff, 0xd8, 0xff})

	assert.True(t, ValidID(p.ID))
	assert.Equal(t, "Sunset", p.Title)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, p.ImageData)
	assert.WithinDuration(t, time.Now(), p.UploadDate, time.Second)
	assert.False(t, p.Medium.IsSome())
	assert.False(t, p.DateStarted.IsSome())
}

func TestNewArtPieceUniqueIDs(t *testing.T) {
	a := NewArtPiece("a", nil)
	b := NewArtPiece("b", nil)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestArtPieceCloneCopiesImage(t *testing.T) {
	p := NewArtPiece("Sunset", []byte{1, 2, 3})
	c := p.Clone()
	c.ImageData[0] = 9

	assert.Equal(t, byte(1), p.ImageData[0])
}

func TestArtPieceJSONFieldNames(t *testing.T) {
	p := ArtPiece{
		ID:          "0194a0c0-0000-7000-8000-000000000001",
		Title:       "Sunset",
		DateStarted: Some(Date{2025, time.January, 2}),
		Medium:      Some("oil"),
		ImageData:   []byte("img"),
		UploadDate:  time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Sunset", raw["title"])
	assert.Equal(t, "2025-01-02", raw["dateStarted"])
	assert.Nil(t, raw["dateCompleted"])
	assert.Equal(t, "oil", raw["medium"])
	assert.Equal(t, "aW1n", raw["imageData"], "image bytes are inlined as base64")
	assert.Contains(t, raw, "notes", "absent optionals are still encoded")
}

func TestArtPieceDecodeIgnoresGalleryIDs(t *testing.T) {
	blob := `{"id":"x","title":"Old","imageData":"","uploadDate":"2025-01-13T10:00:00Z","galleryIDs":["g1"]}`

	var p ArtPiece
	require.NoError(t, json.Unmarshal([]byte(blob), &p))
	assert.Equal(t, "Old", p.Title)
}
