package types

import "errors"

// KVStore is the blocking, process-local key-value facility the catalogue
// persists through. Values are opaque byte blobs; there are no transactions
// across keys.
type KVStore interface {
	// Get returns the value stored under key.
	// Returns ErrKeyNotFound if no value is stored.
	Get(key string) ([]byte, error)

	// Set stores value under key, replacing any previous value. The write
	// is complete when Set returns.
	Set(key string, value []byte) error

	// Remove deletes the value stored under key. Idempotent: removing a
	// missing key succeeds.
	Remove(key string) error

	// Close releases backend resources. Idempotent. After Close, all
	// operations return ErrDetached.
	Close() error
}

// Storage lifecycle and key errors.
var (
	ErrDetached        = errors.New("storage is detached")
	ErrAlreadyAttached = errors.New("storage is already attached")
	ErrKeyNotFound     = errors.New("key not found")
	ErrInvalidKey      = errors.New("invalid key")
)
