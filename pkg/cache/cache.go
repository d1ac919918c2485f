// pkg/cache/cache.go
package cache

import (
	"context"
	"time"
)

// Store is a key/value store with per-key TTL, the contract the session
// cache is built on. Implementations: the Redis client in pkg/redis and the
// in-memory Memory store in this package.
//
// Get returns (value, true, nil) on a hit and (nil, false, nil) on a miss;
// a transport failure is returned as an error and callers are expected to
// treat it as a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
