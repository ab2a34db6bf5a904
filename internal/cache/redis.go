package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores the entry under a single key with an expiry
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend creates a Redis-based backend
func NewRedisBackend(client *redis.Client, prefix, key string) *RedisBackend {
	if prefix == "" {
		prefix = "viewer"
	}
	return &RedisBackend{
		client: client,
		key:    fmt.Sprintf("%s:%s", prefix, key),
	}
}

func (b *RedisBackend) Get(ctx context.Context) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

// Put stores data; the key outlives the TTL by a minute so expiry is
// decided by the entry timestamp, not by Redis.
func (b *RedisBackend) Put(ctx context.Context, data []byte, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.key, data, ttl+time.Minute).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}
