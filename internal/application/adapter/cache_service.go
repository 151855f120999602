// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// CacheService defines the interface for short-lived key/value caching, used
// for dashboard snapshots. A cache miss returns (nil, nil).
type CacheService interface {
	// Get retrieves the raw value stored under key, or nil on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key from the cache. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
