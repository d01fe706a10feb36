// Package types defines the catalogue records (ArtPiece, Gallery), the
// key-value storage interface the catalogue persists through, backend
// configuration, and the standard error values shared across packages.
package types
