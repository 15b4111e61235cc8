package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/feel-write/feelwrite-backend/internal/database"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached data
	CacheKeyPrefix = "cache:"
	// DefaultCacheTTL keeps derived stats fresh enough for a dashboard
	DefaultCacheTTL = 5 * time.Minute
	// MinCacheTTL is the shortest TTL we bother caching for
	MinCacheTTL = 30 * time.Second
	// MaxCacheTTL caps staleness of derived data
	MaxCacheTTL = 30 * time.Minute
)

// CacheService provides Redis-backed caching for derived dashboard data.
// All operations degrade to a no-op miss when Redis is unavailable.
type CacheService struct{}

// Get retrieves a value from cache. A miss is not an error.
func (c *CacheService) Get(key string, dest interface{}) (bool, error) {
	if database.RedisClient == nil {
		return false, nil
	}
	ctx := context.Background()
	val, err := database.RedisClient.Get(ctx, CacheKeyPrefix+key).Result()
	if err != nil {
		return false, nil
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a value in cache with the default TTL.
func (c *CacheService) Set(key string, value interface{}) error {
	return c.SetWithTTL(key, value, DefaultCacheTTL)
}

// SetWithTTL stores a value with a custom TTL, clamped to the allowed range.
func (c *CacheService) SetWithTTL(key string, value interface{}, ttl time.Duration) error {
	if database.RedisClient == nil {
		return nil
	}
	if ttl < MinCacheTTL {
		ttl = MinCacheTTL
	}
	if ttl > MaxCacheTTL {
		ttl = MaxCacheTTL
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return database.RedisClient.Set(context.Background(), CacheKeyPrefix+key, jsonData, ttl).Err()
}

// Delete removes a value from cache.
func (c *CacheService) Delete(key string) error {
	if database.RedisClient == nil {
		return nil
	}
	return database.RedisClient.Del(context.Background(), CacheKeyPrefix+key).Err()
}

// CacheKey generates a cache key for a specific resource.
func CacheKey(resource string, identifier string) string {
	return fmt.Sprintf("%s:%s", resource, identifier)
}

// Global cache service instance
var Cache = &CacheService{}
