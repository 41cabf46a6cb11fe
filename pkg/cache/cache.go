// Package cache stores rendered figures between runs.
//
// The [Cache] interface is a byte store with TTLs. Three backends exist:
//   - [NullCache]: caches nothing (--no-cache, tests)
//   - [FileCache]: one JSON file per entry below a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (HTTP host, several replicas)
//
// Keys are produced by a [Keyer] from a graph content hash plus the options
// that influence the figure, so the same graph rendered the same way maps to
// the same entry regardless of where it was loaded from.
package cache

import (
	"context"
	"time"
)

// Cache is a key-value byte store with expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. A missing or
	// expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// DefaultTTL is how long figures stay cached unless configured otherwise.
const DefaultTTL = 24 * time.Hour
