package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr, password string, db int) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (c *RedisCache) Get(key string) ([]byte, error) {
	val, err := c.client.Get(context.Background(), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache key %q: %w", key, err)
	}
	return val, nil
}

func (c *RedisCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(context.Background(), key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache key %q: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Del(key string) error {
	if err := c.client.Del(context.Background(), key).Err(); err != nil {
		return fmt.Errorf("failed to delete cache key %q: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
