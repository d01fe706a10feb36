// Package store implements the artwork store: the single owner of the
// catalogue's pieces and galleries. Every mutation rewrites the whole
// affected list to the key-value facility before the in-memory list is
// replaced, so a failed write leaves the store unchanged.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/canvas/internal/logging"
	"github.com/mesh-intelligence/canvas/pkg/types"
)

// Operation names used in errors, log fields and events.
const (
	opAddPiece          = "add piece"
	opRemovePiece       = "remove piece"
	opAddGallery        = "add gallery"
	opUpdateGallery     = "update gallery"
	opRemoveGallery     = "remove gallery"
	opReorderGalleries  = "reorder galleries"
	opResetAllData      = "reset all data"
	opCascadeRemoval    = "cascade piece removal"
	opAddPieceToGallery = "add piece to gallery"
	opRemoveFromGallery = "remove piece from gallery"
	opRenameGallery     = "rename gallery"
	opPublishPiece      = "publish piece"
)

// Options configures a Store.
type Options struct {
	// CascadePieceRemoval strips a removed piece's ID from every gallery.
	// Off by default: galleries keep dangling piece IDs.
	CascadePieceRemoval bool

	// Logger receives load diagnostics and mutation traces. Nil discards.
	Logger logrus.FieldLogger
}

// Store holds the authoritative piece and gallery lists.
// All methods are safe for concurrent use; writers are serialized.
type Store struct {
	mu        sync.RWMutex
	kv        types.KVStore
	opts      Options
	log       *logrus.Entry
	pieces    []types.ArtPiece
	galleries []types.Gallery
	events    *hub
}

// Open builds a Store over kv and loads both lists from it.
// A blob that fails to decode is logged and its list starts empty; only a
// storage read error fails Open. The caller keeps ownership of kv.
func Open(kv types.KVStore, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Store{
		kv:     kv,
		opts:   opts,
		log:    logging.WithComponent(logger, "store"),
		events: newHub(),
	}

	pieces, err := loadList(s, types.PiecesKey, DecodePieces)
	if err != nil {
		return nil, err
	}
	galleries, err := loadList(s, types.GalleriesKey, DecodeGalleries)
	if err != nil {
		return nil, err
	}
	s.pieces = pieces
	s.galleries = galleries

	s.log.WithFields(logrus.Fields{
		"pieces":    len(pieces),
		"galleries": len(galleries),
	}).Debug("catalogue loaded")
	return s, nil
}

// loadList reads and decodes one key. A missing key or an undecodable blob
// yields an empty list.
func loadList[T any](s *Store, key string, decode func([]byte) ([]T, error)) ([]T, error) {
	data, err := s.kv.Get(key)
	if errors.Is(err, types.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}

	list, err := decode(data)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("discarding undecodable list")
		return nil, nil
	}
	return list, nil
}

// Subscribe returns a channel that receives an Event after every committed
// mutation, and a cancel func that closes it. Delivery never blocks the
// store: events that do not fit the channel buffer are dropped, so
// subscribers should treat an event as "re-read snapshots".
func (s *Store) Subscribe() (<-chan Event, func()) {
	return s.events.subscribe()
}

// Close closes every subscriber channel. The store remains readable.
func (s *Store) Close() {
	s.events.close()
}

// ResetAllData clears both lists and removes both keys from storage.
// Afterwards storage holds no value for either key. If a removal fails the
// in-memory lists are left untouched.
func (s *Store) ResetAllData() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range types.StorageKeys {
		if err := s.kv.Remove(key); err != nil {
			return fmt.Errorf("%s: %w", opResetAllData, err)
		}
	}
	s.pieces = nil
	s.galleries = nil

	s.log.WithField("op", opResetAllData).Info("catalogue reset")
	s.events.publish(Event{Kind: EventReset, Op: opResetAllData})
	return nil
}

// commitPieces persists next and, on success, makes it the current list.
// The caller must hold s.mu.
func (s *Store) commitPieces(op string, next []types.ArtPiece) error {
	data, err := EncodePieces(next)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.kv.Set(types.PiecesKey, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.pieces = next
	return nil
}

// commitGalleries persists next and, on success, makes it the current list.
// The caller must hold s.mu.
func (s *Store) commitGalleries(op string, next []types.Gallery) error {
	data, err := EncodeGalleries(next)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.kv.Set(types.GalleriesKey, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.galleries = next
	return nil
}
