// Package cache stores computed bounds and solutions keyed by instance
// content and solver options.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for
// shared deployments and [NullCache] when caching is disabled. Keys come
// from a [Keyer] so that callers never assemble key strings themselves.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind. Bounds depend only on the
// instance data and live longer than sampled solutions.
const (
	TTLBounds = 30 * 24 * time.Hour
	TTLSolve  = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiration.
//
// Get reports a miss as (nil, false, nil); an error means the backend failed.
// A ttl of zero stores the entry without expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
