package types

import (
	"time"

	"github.com/google/uuid"
)

// ArtPiece is a single catalogued artwork and its metadata.
// Gallery membership is recorded on the Gallery side only; see
// Gallery.PieceIDs.
type ArtPiece struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	DateStarted   Optional[Date]   `json:"dateStarted"`
	DateCompleted Optional[Date]   `json:"dateCompleted"`
	Medium        Optional[string] `json:"medium"`
	Dimensions    Optional[string] `json:"dimensions"`
	Inspiration   Optional[string] `json:"inspiration"`
	Notes         Optional[string] `json:"notes"`
	ImageData     []byte           `json:"imageData"`
	UploadDate    time.Time        `json:"uploadDate"`
}

// NewArtPiece returns a piece with a fresh UUID v7 and UploadDate set to the
// current time. Optional fields start absent.
func NewArtPiece(title string, imageData []byte) ArtPiece {
	return ArtPiece{
		ID:         NewID(),
		Title:      title,
		ImageData:  imageData,
		UploadDate: time.Now().UTC(),
	}
}

// Clone returns a copy that shares no mutable state with p.
func (p ArtPiece) Clone() ArtPiece {
	c := p
	if p.ImageData != nil {
		c.ImageData = append([]byte(nil), p.ImageData...)
	}
	return c
}

// NewID generates a UUID v7 for record IDs.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// ValidID reports whether id parses as a UUID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
