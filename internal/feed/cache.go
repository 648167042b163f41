package feed

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "roster:feed:"

// Cache stores raw sheet bodies keyed by source URL.
type Cache interface {
	Get(ctx context.Context, url string) (string, bool, error)
	Set(ctx context.Context, url, body string, ttl time.Duration) error
	Delete(ctx context.Context, url string) error
}

// RedisCache implements Cache on a go-redis client.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// CacheKey derives a fixed-length key from a sheet URL.
func CacheKey(url string) string {
	return cacheKeyPrefix + uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String()
}

func (c *RedisCache) Get(ctx context.Context, url string) (string, bool, error) {
	body, err := c.client.Get(ctx, CacheKey(url)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return body, true, nil
}

func (c *RedisCache) Set(ctx context.Context, url, body string, ttl time.Duration) error {
	return c.client.Set(ctx, CacheKey(url), body, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, url string) error {
	return c.client.Del(ctx, CacheKey(url)).Err()
}
