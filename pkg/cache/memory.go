package cache

import (
	"context"
	"time"

	"github.com/maypok86/otter"
)

// noExpiry stands in for "never" since otter requires a positive TTL.
const noExpiry = 365 * 24 * time.Hour

// MemoryCache is a bounded in-process cache backed by otter.
// Entries are evicted by capacity as well as by TTL.
type MemoryCache struct {
	c otter.CacheWithVariableTTL[string, []byte]
}

// NewMemoryCache creates a cache holding at most capacity entries.
func NewMemoryCache(capacity int) (*MemoryCache, error) {
	b, err := otter.NewBuilder[string, []byte](capacity)
	if err != nil {
		return nil, err
	}
	c, err := b.WithVariableTTL().Build()
	if err != nil {
		return nil, err
	}
	return &MemoryCache{c: c}, nil
}

// Get retrieves a value.
func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := m.c.Get(key)
	return v, ok, nil
}

// Set stores a copy of data.
func (m *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = noExpiry
	}
	m.c.Set(key, append([]byte(nil), data...), ttl)
	return nil
}

// Delete removes a value.
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

// Clear drops every entry.
func (m *MemoryCache) Clear(ctx context.Context) (int, error) {
	n := m.c.Size()
	m.c.Clear()
	return n, nil
}

// Close stops otter's background goroutines.
func (m *MemoryCache) Close() error {
	m.c.Close()
	return nil
}

var (
	_ Cache   = (*MemoryCache)(nil)
	_ Clearer = (*MemoryCache)(nil)
)
