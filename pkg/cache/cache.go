// Package cache stores compiled package snapshots between runs.
//
// Three backends implement [Cache]:
//   - [FileCache]: one file per entry under a local directory (CLI default)
//   - [RedisCache]: a shared Redis instance, e.g. for CI runners
//   - [NullCache]: stores nothing (--no-cache)
//
// Keys come from [SnapshotKey], which hashes everything that can change a
// compiler's output for a package root.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the entry for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop all their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// DefaultTTL is how long snapshots are kept unless configured otherwise.
const DefaultTTL = 7 * 24 * time.Hour

// SnapshotKey returns the cache key of a compiled snapshot. fingerprint
// identifies the package sources; env and command identify how they were
// compiled.
func SnapshotKey(fingerprint, env string, command []string) string {
	return hashKey("snapshot", fingerprint, env, command)
}

var (
	_ Clearer = (*FileCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
