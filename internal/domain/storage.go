package domain

// BlobStore is the durable key-value store the library persists into.
// The library serializes the whole Document as a single value; the store
// never interprets the bytes.
type BlobStore interface {
	// Get returns the value for key, or false if absent.
	Get(key string) ([]byte, bool)

	// Set durably writes the value for key.
	Set(key string, value []byte) error

	Close() error
}
