package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a RedisCache.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// DialTimeout bounds the initial connection. Zero keeps the client default.
	DialTimeout time.Duration
	// Retries is how many extra attempts a network failure gets.
	Retries int
	// RetryDelay is the first backoff delay; it doubles per attempt.
	RetryDelay time.Duration
}

// RedisCache stores entries in Redis using native key expiry.
type RedisCache struct {
	client *redis.Client
	opts   RedisOptions
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	if opts.Addr == "" {
		opts.Addr = "localhost:6379"
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 100 * time.Millisecond
	}
	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
		MaxRetries:  -1,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: redis %s: %v", ErrNetwork, opts.Addr, err)
	}
	return &RedisCache{client: client, opts: opts}, nil
}

// Get reads key. redis.Nil is a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	hit := false
	err := c.do(ctx, func() error {
		b, err := c.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		data, hit = b, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, hit, nil
}

// Set writes key with the given expiry. A ttl <= 0 stores without expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.do(ctx, func() error {
		return c.client.Set(ctx, key, data, ttl).Err()
	})
}

// Delete removes key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.do(ctx, func() error {
		return c.client.Del(ctx, key).Err()
	})
}

// Close closes the client connection pool.
func (c *RedisCache) Close() error { return c.client.Close() }

// do runs fn, retrying network failures with backoff.
func (c *RedisCache) do(ctx context.Context, fn func() error) error {
	return RetryWithBackoff(ctx, c.opts.Retries+1, c.opts.RetryDelay, func() error {
		err := fn()
		var netErr net.Error
		if errors.As(err, &netErr) {
			return Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
		}
		return err
	})
}

var _ Cache = (*RedisCache)(nil)
