package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps documents as plain string values in Redis.
type RedisBackend struct {
	rdb *redis.Client
}

// NewRedisBackend connects to Redis and verifies connectivity.
func NewRedisBackend(ctx context.Context, addr string, db int) (*RedisBackend, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return &RedisBackend{rdb: rdb}, nil
}

func (b *RedisBackend) Load(ctx context.Context, key string) ([]byte, error) {
	value, err := b.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return value, nil
}

func (b *RedisBackend) Save(ctx context.Context, key string, value []byte) error {
	if err := b.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (b *RedisBackend) Close() error {
	return b.rdb.Close()
}
