package types

// Storage keys for the two persisted lists. Each key holds the entire list
// as one blob.
const (
	PiecesKey    = "artPieces"
	GalleriesKey = "galleries"
)

// StorageKeys lists every key the catalogue writes, for enumeration.
var StorageKeys = []string{
	PiecesKey,
	GalleriesKey,
}
