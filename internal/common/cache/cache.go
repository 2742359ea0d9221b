package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ruya-backend/internal/platform/redis"
)

// CacheService is a thin JSON cache over Redis. A nil *CacheService is a
// valid no-op cache, so callers never branch on Redis availability.
type CacheService struct {
	redisClient *redis.Client
}

func NewCacheService(redisClient *redis.Client) *CacheService {
	return &CacheService{
		redisClient: redisClient,
	}
}

// Get reads a value from the cache into dest.
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if c == nil {
		return redis.Nil
	}

	data, err := c.redisClient.Get(ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), dest)
}

// Set stores a value in the cache.
func (c *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return c.redisClient.Set(ctx, key, string(data), ttl).Err()
}

// Delete removes a value from the cache.
func (c *CacheService) Delete(ctx context.Context, key string) error {
	if c == nil {
		return nil
	}

	return c.redisClient.Del(ctx, key).Err()
}

// Exists reports whether the key is present.
func (c *CacheService) Exists(ctx context.Context, key string) (bool, error) {
	if c == nil {
		return false, nil
	}

	result, err := c.redisClient.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return result > 0, nil
}
