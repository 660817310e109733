// Package cache provides the byte-oriented key/value stores libscope uses
// for HTTP responses, aggregated code examples and rendered diagrams.
//
// # Backends
//
//   - [FileCache]: JSON files under a directory (default for CLI and server)
//   - [RedisCache]: shared Redis instance
//   - [MongoCache]: MongoDB collection
//   - [MemoryCache]: in-process, bounded (otter)
//   - [NullCache]: stores nothing
//
// All backends implement [Cache]. Values are opaque bytes; callers encode
// their own records (usually JSON).
//
// # Keys
//
// [Keyer] centralizes key construction so that every backend sees the same
// namespacing. [ScopedKeyer] adds a prefix, which is how several deployments
// share one Redis or Mongo instance.
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a byte-oriented key/value store with optional per-entry TTL.
//
// A ttl of zero means the entry never expires at the backend level; callers
// that need their own freshness rules (such as the example aggregator) store
// a timestamp in the value and pass zero.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	// Clear removes all entries and reports how many were removed when the
	// backend can tell.
	Clear(ctx context.Context) (int, error)
}

// Keyer builds cache keys for each kind of cached record.
type Keyer interface {
	// HTTPKey returns the key for a cached upstream response.
	HTTPKey(namespace, key string) string

	// ExamplesKey returns the key for a library's aggregated examples.
	ExamplesKey(library string) string

	// DiagramKey returns the key for a rendered structure diagram.
	DiagramKey(library, format string, version string) string
}

// DefaultKeyer is the unprefixed [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the unprefixed keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// ExamplesKey returns "examples:<library>". The library name is used
// verbatim so that the cache holds one entry per requested name.
func (DefaultKeyer) ExamplesKey(library string) string {
	return "examples:" + strings.TrimSpace(library)
}

// DiagramKey hashes the diagram inputs so that a new library version
// produces a new key.
func (DefaultKeyer) DiagramKey(library, format, version string) string {
	return hashKey("diagram", library, format, version)
}
