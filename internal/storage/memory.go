package storage

import (
	"context"
	"sync"
)

// MemoryKV is a volatile KV backend used in tests and as a last-resort
// fallback when the durable store cannot be opened.
type MemoryKV struct {
	blobs sync.Map
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{}
}

func (m *MemoryKV) Read(ctx context.Context, key string) (string, bool, error) {
	val, ok := m.blobs.Load(key)
	if !ok {
		return "", false, nil
	}
	return val.(string), true, nil
}

func (m *MemoryKV) Write(ctx context.Context, key string, value string) error {
	m.blobs.Store(key, value)
	return nil
}
