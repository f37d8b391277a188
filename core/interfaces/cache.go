// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
// Any other Get error means the backend itself failed.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache defines the key-value store behind settings persistence and the
// reader view cache. Implementations can be in-memory, SQLite, Redis or the
// OS keyring.
//
// Example usage:
//
//	// Persist the settings record without expiry
//	err := cache.Set(ctx, "reader:settings", data, 0)
//
//	// Load it back
//	data, err := cache.Get(ctx, "reader:settings")
//	if err != nil {
//		// handle error or miss
//	}
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns ErrCacheMiss if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}