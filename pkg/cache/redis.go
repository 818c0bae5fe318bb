package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in Redis, letting several render service
// instances share artifacts.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to a redis:// or rediss:// URL and pings it.
func NewRedisCache(ctx context.Context, url string) (Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, Retryable(fmt.Errorf("%w: redis ping: %v", ErrNetwork, err))
	}
	return &RedisCache{client: client}, nil
}

// Get retrieves a value. redis.Nil is reported as a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value. Redis treats a zero expiration as no expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, data, max(ttl, 0)).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Clear deletes keys of ns with SCAN, so it never blocks the server the
// way KEYS would. Keys outside a Keyer namespace are left alone.
func (c *RedisCache) Clear(ctx context.Context, ns Namespace) (int, error) {
	patterns := []string{"*" + string(ns) + ":*"}
	if ns == NamespaceAll {
		patterns = patterns[:0]
		for _, n := range Namespaces {
			patterns = append(patterns, "*"+string(n)+":*")
		}
	}

	count := 0
	for _, p := range patterns {
		iter := c.client.Scan(ctx, 0, p, 500).Iterator()
		for iter.Next(ctx) {
			key := iter.Val()
			if ns != NamespaceAll && NamespaceOf(key) != ns {
				continue
			}
			n, err := c.client.Del(ctx, key).Result()
			if err != nil {
				return count, err
			}
			count += int(n)
		}
		if err := iter.Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
