package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache stores entries in Redis so research results survive restarts
// and are shared between instances.
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCache creates a cache backed by the given Redis client.
func NewRedisCache(client *redis.Client, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		logger: logger.Named("cache"),
	}
}

// Get implements Cache. Redis errors are treated as misses so a flaky
// cache never breaks a request.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return value, true
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

var _ Cache = (*RedisCache)(nil)
