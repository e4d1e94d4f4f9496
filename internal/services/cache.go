package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached data
	CacheKeyPrefix = "cache:"
	// CacheGenerationPrefix is the Redis key prefix for cache group versions
	CacheGenerationPrefix = "cachegen:"
	// DefaultCacheTTL applies when no TTL is configured
	DefaultCacheTTL = 10 * time.Minute
	// MaxCacheTTL caps configured TTLs so stale catalog data cannot linger for days
	MaxCacheTTL = 12 * time.Hour
)

// CacheService stores JSON values in Redis. A nil *CacheService or one without a client
// behaves as a permanently empty cache, so callers never need to check for Redis.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, ttl time.Duration) *CacheService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if ttl > MaxCacheTTL {
		ttl = MaxCacheTTL
	}
	return &CacheService{client: client, ttl: ttl}
}

func (c *CacheService) enabled() bool {
	return c != nil && c.client != nil
}

// Get retrieves a value from cache. A miss is reported as (false, nil).
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.enabled() {
		return false, nil
	}

	val, err := c.client.Get(ctx, CacheKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a value in cache with the configured TTL
func (c *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	if !c.enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, CacheKeyPrefix+key, data, c.ttl).Err()
}

// Delete removes values from cache
func (c *CacheService) Delete(ctx context.Context, keys ...string) error {
	if !c.enabled() || len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = CacheKeyPrefix + k
	}
	return c.client.Del(ctx, full...).Err()
}

// Generation returns the current version of a cache group, 0 if it was never bumped.
// Read the generation before reading the backing store and build keys with Versioned:
// a fill computed from data older than the last Bump then lands on a key nobody reads.
func (c *CacheService) Generation(ctx context.Context, group string) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}
	gen, err := c.client.Get(ctx, CacheGenerationPrefix+group).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Bump moves a cache group to a new version. Call it after the backing store write.
// Entries under older versions expire with the normal TTL.
func (c *CacheService) Bump(ctx context.Context, group string) error {
	if !c.enabled() {
		return nil
	}
	return c.client.Incr(ctx, CacheGenerationPrefix+group).Err()
}

// Versioned scopes key to a cache group version.
func Versioned(key string, gen int64) string {
	return fmt.Sprintf("%s@%d", key, gen)
}

// CacheKey generates a cache key for a specific resource
func CacheKey(resource string, identifier string) string {
	return fmt.Sprintf("%s:%s", resource, identifier)
}
