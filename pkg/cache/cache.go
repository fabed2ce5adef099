package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer. The Redis implementation lives
// in internal/infrastructure/cache; tests may substitute an in-memory fake.
type Cache interface {
	// Get unmarshals the cached value into dest. found is false on a miss,
	// in which case dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
