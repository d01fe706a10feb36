package store

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/canvas/pkg/types"
)

// AddGallery appends gallery. Unlike AddPiece there is no duplicate-ID
// check. Returns ErrInvalidID for an empty ID.
func (s *Store) AddGallery(gallery types.Gallery) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addGalleryLocked(gallery)
}

func (s *Store) addGalleryLocked(gallery types.Gallery) error {
	if gallery.ID == "" {
		return fmt.Errorf("%s: %w", opAddGallery, types.ErrInvalidID)
	}

	next := make([]types.Gallery, len(s.galleries), len(s.galleries)+1)
	copy(next, s.galleries)
	next = append(next, storedGallery(gallery))
	if err := s.commitGalleries(opAddGallery, next); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"op": opAddGallery, "gallery_id": gallery.ID}).Debug("gallery added")
	s.events.publish(Event{Kind: EventGalleries, Op: opAddGallery, ID: gallery.ID})
	return nil
}

// UpdateGallery replaces the first gallery with gallery's ID, keeping its
// position. Does nothing, and writes nothing, when no gallery matches.
func (s *Store) UpdateGallery(gallery types.Gallery) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateGalleryLocked(opUpdateGallery, gallery)
}

func (s *Store) updateGalleryLocked(op string, gallery types.Gallery) error {
	i := galleryIndex(s.galleries, gallery.ID)
	if i < 0 {
		return nil
	}

	next := make([]types.Gallery, len(s.galleries))
	copy(next, s.galleries)
	next[i] = storedGallery(gallery)
	if err := s.commitGalleries(op, next); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"op": op, "gallery_id": gallery.ID}).Debug("gallery updated")
	s.events.publish(Event{Kind: EventGalleries, Op: op, ID: gallery.ID})
	return nil
}

// RemoveGallery removes every gallery with the given ID and persists the
// list. Pieces are not touched.
func (s *Store) RemoveGallery(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]types.Gallery, 0, len(s.galleries))
	for _, g := range s.galleries {
		if g.ID != id {
			next = append(next, g)
		}
	}
	if err := s.commitGalleries(opRemoveGallery, next); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"op": opRemoveGallery, "gallery_id": id}).Debug("gallery removed")
	s.events.publish(Event{Kind: EventGalleries, Op: opRemoveGallery, ID: id})
	return nil
}

// ReorderGalleries moves the galleries at offsets from so they sit before
// the gallery originally at offset to (to == len moves them to the end).
// Moved galleries keep their relative order. Returns ErrInvalidIndex for
// any offset out of range.
func (s *Store) ReorderGalleries(from []int, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := moveOffsets(s.galleries, from, to)
	if err != nil {
		return fmt.Errorf("%s: %w", opReorderGalleries, err)
	}
	if err := s.commitGalleries(opReorderGalleries, next); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{"op": opReorderGalleries, "from": from, "to": to}).Debug("galleries reordered")
	s.events.publish(Event{Kind: EventGalleries, Op: opReorderGalleries})
	return nil
}

// AddPieceToGallery records pieceID as a member of galleryID.
// Returns ErrNotFound if either record does not exist.
func (s *Store) AddPieceToGallery(pieceID, galleryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addPieceToGalleryLocked(pieceID, galleryID)
}

func (s *Store) addPieceToGalleryLocked(pieceID, galleryID string) error {
	if pieceIndex(s.pieces, pieceID) < 0 {
		return fmt.Errorf("%s: piece %s: %w", opAddPieceToGallery, pieceID, types.ErrNotFound)
	}
	i := galleryIndex(s.galleries, galleryID)
	if i < 0 {
		return fmt.Errorf("%s: gallery %s: %w", opAddPieceToGallery, galleryID, types.ErrNotFound)
	}
	g := s.galleries[i].Clone()
	g.AddPiece(pieceID)
	return s.updateGalleryLocked(opAddPieceToGallery, g)
}

// RemovePieceFromGallery drops pieceID from galleryID. The piece itself may
// already be gone; only the gallery must exist.
func (s *Store) RemovePieceFromGallery(pieceID, galleryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := galleryIndex(s.galleries, galleryID)
	if i < 0 {
		return fmt.Errorf("%s: gallery %s: %w", opRemoveFromGallery, galleryID, types.ErrNotFound)
	}
	g := s.galleries[i].Clone()
	g.RemovePiece(pieceID)
	return s.updateGalleryLocked(opRemoveFromGallery, g)
}

// CreateGalleryWithPiece adds piece (if new) and a new gallery named name
// that holds it. Returns the created gallery.
func (s *Store) CreateGalleryWithPiece(name string, piece types.ArtPiece) (types.Gallery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.addPieceLocked(piece); err != nil {
		return types.Gallery{}, err
	}
	g := types.NewGallery(name)
	g.AddPiece(piece.ID)
	if err := s.addGalleryLocked(g); err != nil {
		return types.Gallery{}, err
	}
	return g.Clone(), nil
}

// RenameGallery replaces the name of galleryID. Returns ErrNotFound if the
// gallery does not exist.
func (s *Store) RenameGallery(galleryID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := galleryIndex(s.galleries, galleryID)
	if i < 0 {
		return fmt.Errorf("%s: %w", opRenameGallery, types.ErrNotFound)
	}
	g := s.galleries[i].Clone()
	g.Name = name
	return s.updateGalleryLocked(opRenameGallery, g)
}

// Galleries returns a snapshot of all galleries in display order.
func (s *Store) Galleries() []types.Gallery {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Gallery, len(s.galleries))
	for i, g := range s.galleries {
		out[i] = g.Clone()
	}
	return out
}

// Gallery returns the first gallery with the given ID, or ErrNotFound.
func (s *Store) Gallery(id string) (types.Gallery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := galleryIndex(s.galleries, id)
	if i < 0 {
		return types.Gallery{}, types.ErrNotFound
	}
	return s.galleries[i].Clone(), nil
}

// PiecesInGallery returns the catalogue's pieces that galleryID lists, in
// catalogue order. IDs of removed pieces are skipped.
func (s *Store) PiecesInGallery(galleryID string) ([]types.ArtPiece, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := galleryIndex(s.galleries, galleryID)
	if i < 0 {
		return nil, types.ErrNotFound
	}
	g := s.galleries[i]
	var out []types.ArtPiece
	for _, p := range s.pieces {
		if g.HasPiece(p.ID) {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// DanglingPieceIDs returns, per gallery ID, the member IDs that no longer
// name a catalogue piece. Galleries with none are omitted.
func (s *Store) DanglingPieceIDs() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]string)
	for _, g := range s.galleries {
		for _, id := range g.PieceIDs.Sorted() {
			if pieceIndex(s.pieces, id) < 0 {
				out[g.ID] = append(out[g.ID], id)
			}
		}
	}
	return out
}

// storedGallery is the copy of g the store keeps, with CreationDate in UTC.
func storedGallery(g types.Gallery) types.Gallery {
	c := g.Clone()
	c.CreationDate = c.CreationDate.UTC()
	return c
}

func galleryIndex(galleries []types.Gallery, id string) int {
	for i, g := range galleries {
		if g.ID == id {
			return i
		}
	}
	return -1
}
