package types

import "time"

// Gallery is a named collection of art pieces, referenced by ID.
// Names are not required to be unique.
type Gallery struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreationDate time.Time `json:"creationDate"`
	PieceIDs     IDSet     `json:"pieceIDs"`
}

// NewGallery returns an empty gallery with a fresh UUID v7 and
// CreationDate set to the current time.
func NewGallery(name string) Gallery {
	return Gallery{
		ID:           NewID(),
		Name:         name,
		CreationDate: time.Now().UTC(),
		PieceIDs:     IDSet{},
	}
}

// AddPiece records pieceID as a member. Idempotent.
func (g *Gallery) AddPiece(pieceID string) {
	if g.PieceIDs == nil {
		g.PieceIDs = IDSet{}
	}
	g.PieceIDs.Add(pieceID)
}

// RemovePiece drops pieceID from the members. Idempotent.
func (g *Gallery) RemovePiece(pieceID string) {
	g.PieceIDs.Remove(pieceID)
}

// HasPiece reports whether pieceID is a member.
func (g Gallery) HasPiece(pieceID string) bool {
	return g.PieceIDs.Has(pieceID)
}

// Clone returns a copy that shares no mutable state with g.
func (g Gallery) Clone() Gallery {
	c := g
	c.PieceIDs = g.PieceIDs.Clone()
	return c
}
