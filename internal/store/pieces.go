package store

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/canvas/pkg/types"
)

// AddPiece appends piece unless a piece with the same ID already exists,
// in which case it does nothing. Returns ErrInvalidID for an empty ID.
func (s *Store) AddPiece(piece types.ArtPiece) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addPieceLocked(piece)
}

func (s *Store) addPieceLocked(piece types.ArtPiece) error {
	if piece.ID == "" {
		return fmt.Errorf("%s: %w", opAddPiece, types.ErrInvalidID)
	}
	if pieceIndex(s.pieces, piece.ID) >= 0 {
		return nil
	}

	next := make([]types.ArtPiece, len(s.pieces), len(s.pieces)+1)
	copy(next, s.pieces)
	stored := piece.Clone()
	stored.UploadDate = stored.UploadDate.UTC()
	next = append(next, stored)
	if err := s.commitPieces(opAddPiece, next); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"op": opAddPiece, "piece_id": piece.ID}).Debug("piece added")
	s.events.publish(Event{Kind: EventPieces, Op: opAddPiece, ID: piece.ID})
	return nil
}

// RemovePiece removes every piece with the given ID and persists the list.
// Galleries keep the ID unless Options.CascadePieceRemoval is set.
func (s *Store) RemovePiece(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]types.ArtPiece, 0, len(s.pieces))
	for _, p := range s.pieces {
		if p.ID != id {
			next = append(next, p)
		}
	}
	removed := len(next) != len(s.pieces)
	if err := s.commitPieces(opRemovePiece, next); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"op": opRemovePiece, "piece_id": id, "removed": removed}).Debug("piece removed")
	s.events.publish(Event{Kind: EventPieces, Op: opRemovePiece, ID: id})

	if !s.opts.CascadePieceRemoval || !removed {
		return nil
	}
	return s.stripPieceLocked(id)
}

// stripPieceLocked drops pieceID from every gallery that holds it.
func (s *Store) stripPieceLocked(pieceID string) error {
	changed := false
	next := make([]types.Gallery, len(s.galleries))
	for i, g := range s.galleries {
		if g.HasPiece(pieceID) {
			g = g.Clone()
			g.RemovePiece(pieceID)
			changed = true
		}
		next[i] = g
	}
	if !changed {
		return nil
	}
	if err := s.commitGalleries(opCascadeRemoval, next); err != nil {
		return err
	}
	s.events.publish(Event{Kind: EventGalleries, Op: opCascadeRemoval, ID: pieceID})
	return nil
}

// Pieces returns a snapshot of all pieces in insertion order.
func (s *Store) Pieces() []types.ArtPiece {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clonePieces(s.pieces)
}

// Piece returns the piece with the given ID, or ErrNotFound.
func (s *Store) Piece(id string) (types.ArtPiece, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := pieceIndex(s.pieces, id)
	if i < 0 {
		return types.ArtPiece{}, types.ErrNotFound
	}
	return s.pieces[i].Clone(), nil
}

// GalleriesForPiece returns the galleries that list pieceID, in gallery
// order.
func (s *Store) GalleriesForPiece(pieceID string) []types.Gallery {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Gallery
	for _, g := range s.galleries {
		if g.HasPiece(pieceID) {
			out = append(out, g.Clone())
		}
	}
	return out
}

// PublishPiece adds piece and, when galleryID is present, adds it to that
// gallery. Both steps run under one lock. Returns ErrNotFound, with nothing
// written, if the gallery does not exist.
func (s *Store) PublishPiece(piece types.ArtPiece, galleryID types.Optional[string]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	gid, ok := galleryID.Get()
	if ok && galleryIndex(s.galleries, gid) < 0 {
		return fmt.Errorf("%s: gallery %s: %w", opPublishPiece, gid, types.ErrNotFound)
	}
	if err := s.addPieceLocked(piece); err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return s.addPieceToGalleryLocked(piece.ID, gid)
}

func pieceIndex(pieces []types.ArtPiece, id string) int {
	for i, p := range pieces {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func clonePieces(pieces []types.ArtPiece) []types.ArtPiece {
	out := make([]types.ArtPiece, len(pieces))
	for i, p := range pieces {
		out[i] = p.Clone()
	}
	return out
}
