package sourcing

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores raw catalog responses keyed by request URL so repeated
// generations for the same destination don't re-hit the external source.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// RedisCache implements Cache on a Redis instance.
// Cache failures are treated as misses; the extractor must work without it.
type RedisCache struct {
	rdb *redis.Client
}

// NewRedisCache connects a cache to the Redis instance at addr.
func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

// Get returns the cached value for key, or ok=false on a miss or any error.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		// Connectivity problems degrade to cache misses, same as redis.Nil.
		return "", false
	}
	return val, true
}

// Set stores value under key with the given TTL, best effort.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	c.rdb.Set(ctx, key, value, ttl)
}

// Close releases the underlying Redis connection.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
