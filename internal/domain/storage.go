package domain

// Store ids for the two process-wide playlist collections.
const (
	StoreCanonical = "canonical"
	StoreDraft     = "draft"
)

// BlobStore is the injected persistence capability: whole-document reads and
// rewrites keyed by store id. There is no partial or streaming I/O; every
// operation loads a full collection and writes it back.
type BlobStore interface {
	// Load returns the stored bytes for a store id. A missing store is not
	// an error; it reads as (nil, false) and means an empty collection.
	Load(storeID string) ([]byte, bool)

	// Save replaces the stored bytes for a store id.
	Save(storeID string, data []byte) error

	Close() error
}
