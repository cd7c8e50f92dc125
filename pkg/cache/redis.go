package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/fnbrowser/pkg/config"
)

// RedisClient is the shared connection pool behind visitor sessions, the
// per-visitor history lists and the set cache.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient opens a pool configured from cfg and pings it within 2s.
func NewRedisClient(cfg *config.Config) (*RedisClient, error) {
	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisClient{client: rdb}, nil
}

// clientOptions applies the REDIS_* pool settings on top of the URL. Zero
// values fall back to the config defaults so hand-built configs still work.
func clientOptions(cfg *config.Config) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	opts.ClientName = cfg.ServiceName
	opts.PoolSize = orDefault(cfg.RedisPoolSize, 10)
	opts.MinIdleConns = orDefault(cfg.RedisMinIdleConns, 2)
	opts.MaxRetries = 3
	opts.DialTimeout = orDefault(cfg.RedisDialTimeout, 5*time.Second)
	opts.ReadTimeout = orDefault(cfg.RedisIOTimeout, 3*time.Second)
	opts.WriteTimeout = opts.ReadTimeout
	// a pooled conn must be available before a read could time out
	opts.PoolTimeout = opts.ReadTimeout + time.Second
	return opts, nil
}

func orDefault[T int | time.Duration](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}

// Ping checks the Redis connection health.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close shuts down the pool.
func (r *RedisClient) Close() error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client returns the underlying redis.Client for direct use.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
