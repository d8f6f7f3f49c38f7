package storage

import "context"

// KV is the persistence backend contract: a key-value blob store holding
// one serialized JSON array per collection. A missing key is not an error;
// callers fall back to their seed dataset.
type KV interface {
	// Read returns the stored value and whether the key exists.
	Read(ctx context.Context, key string) (string, bool, error)
	// Write replaces the full value for key. The write is atomic from the
	// reader's perspective: a reader never observes a partial value.
	Write(ctx context.Context, key string, value string) error
}
