package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in Redis so that several server instances share
// rendered artifacts. Every key is stored under Prefix.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// RedisConfig configures a RedisCache.
type RedisConfig struct {
	// URL is a redis:// or rediss:// URL, e.g. "redis://localhost:6379/0".
	URL string
	// Prefix namespaces keys; defaults to "bluefish:".
	Prefix string
}

// NewRedisCache connects to Redis and checks the connection with PING,
// retrying network failures.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "bluefish:"
	}
	c := &RedisCache{client: redis.NewClient(opts), prefix: prefix}
	err = RetryWithBackoff(ctx, func() error {
		return classify(c.client.Ping(ctx).Err())
	})
	if err != nil {
		c.client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return c, nil
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		var err error
		data, err = c.client.Get(ctx, c.prefix+key).Bytes()
		return classify(err)
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value with the given ttl; zero keeps it until evicted.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return RetryWithBackoff(ctx, func() error {
		return classify(c.client.Set(ctx, c.prefix+key, data, ttl).Err())
	})
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return RetryWithBackoff(ctx, func() error {
		return classify(c.client.Del(ctx, c.prefix+key).Err())
	})
}

// Clear deletes every key under the prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	var batch []string
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := c.client.Del(ctx, batch...).Err()
		batch = batch[:0]
		return err
	}
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return flush()
}

// Close closes the connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// classify marks connection failures as retryable network errors.
func classify(err error) error {
	if err == nil || errors.Is(err, redis.Nil) {
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Retryable(fmt.Errorf("%w: %w", ErrNetwork, err))
	}
	return err
}

var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
