package config

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	Redis *CacheService
)

type CacheService struct {
	Ctx        context.Context
	Connection *redis.Client
}

// NewCacheService connects to Redis. With REDIS_HOST unset the service runs without cache.
func NewCacheService() error {
	if len(Environment.RedisHost) == 0 {
		Logger.Warn("REDIS_HOST not set, cache disabled")
		return nil
	}

	c := redis.NewClient(&redis.Options{
		Addr:     Environment.RedisHost + ":" + Environment.RedisPort,
		Username: Environment.RedisUsername,
		Password: Environment.RedisPassword,
		DB:       0,
	})
	ctx := context.Background()

	if err := c.Ping(ctx).Err(); err != nil {
		return err
	}

	Redis = &CacheService{
		Ctx:        ctx,
		Connection: c,
	}

	return nil
}

// GetKey get key
func (c *CacheService) GetKey(key string, src interface{}) error {
	if c == nil {
		return redis.Nil
	}

	val, err := c.Connection.Get(c.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), src)
}

// SetKey set key
func (c *CacheService) SetKey(key string, value interface{}, expiration time.Duration) error {
	if c == nil {
		return nil
	}

	cacheEntry, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.Connection.Set(c.Ctx, key, cacheEntry, expiration).Err()
}

func (c *CacheService) DeleteKey(keys ...string) error {
	if c == nil {
		return nil
	}

	return c.Connection.Del(c.Ctx, keys...).Err()
}
