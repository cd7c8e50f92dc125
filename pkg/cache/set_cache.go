package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// SetCacheTTL is the default time-to-live for cached set lookups.
	SetCacheTTL = time.Hour

	setCacheKeyPrefix = "set"
)

// SetCache stores encoded set lookups keyed by set name.
// Key format: "set:{lower(name)}"
type SetCache struct {
	client *RedisClient
}

// NewSetCache creates a new SetCache backed by the given RedisClient.
func NewSetCache(r *RedisClient) *SetCache {
	return &SetCache{client: r}
}

// Get returns the cached payload for name. A missing or expired key is
// reported as ok=false with a nil error.
func (c *SetCache) Get(ctx context.Context, name string) ([]byte, bool, error) {
	val, err := c.client.Client().Get(ctx, c.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	return val, true, nil
}

// Set writes payload for name with the given TTL (SetCacheTTL when ttl <= 0).
func (c *SetCache) Set(ctx context.Context, name string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = SetCacheTTL
	}
	if err := c.client.Client().Set(ctx, c.key(name), payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached set.
func (c *SetCache) Delete(ctx context.Context, name string) error {
	if err := c.client.Client().Del(ctx, c.key(name)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "set:{lower(name)}"
func (c *SetCache) key(name string) string {
	return fmt.Sprintf("%s:%s", setCacheKeyPrefix, strings.ToLower(strings.TrimSpace(name)))
}
