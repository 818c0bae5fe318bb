// Package cache stores rendered artifacts keyed by document content.
//
// Three backends implement [Cache]: [FileCache] for the CLI (one JSON file
// per entry under the XDG cache directory), [RedisCache] for the render
// service, and [NullCache] when caching is off. Keys come from a [Keyer]
// so callers never build key strings by hand.
package cache

import (
	"context"
	"time"
)

// Default lifetimes.
const (
	// TTLArtifact bounds rendered outputs. Documents are content-addressed,
	// so entries only expire to reclaim space.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLImport bounds remote feature queries such as UCSC gene tables.
	TTLImport = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Clearer is implemented by caches that can drop entries by namespace.
type Clearer interface {
	// Clear removes the entries of ns, or everything for NamespaceAll, and
	// returns how many were removed.
	Clear(ctx context.Context, ns Namespace) (int, error)
}
