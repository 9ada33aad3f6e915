package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"equipment-system/internal/repositories"
)

const cacheVersionKey = "cache:ver"

// ListCache caches list reads in redis under a global version prefix.
// Invalidation is the blanket policy the application wants after every
// write: bumping the version orphans every cached list at once, and the
// orphans age out via TTL. Redis failures degrade to cache misses.
type ListCache struct {
	cache  repositories.CacheRepositoryInterface
	ttl    time.Duration
	logger *zap.Logger
}

func NewListCache(cache repositories.CacheRepositoryInterface, ttl time.Duration, logger *zap.Logger) *ListCache {
	return &ListCache{cache: cache, ttl: ttl, logger: logger}
}

func (c *ListCache) versionedKey(ctx context.Context, logical string) string {
	ver, err := c.cache.Get(ctx, cacheVersionKey)
	if err != nil {
		ver = "0"
	}
	return fmt.Sprintf("cache:v%s:%s", ver, logical)
}

// GetJSON loads a cached value into dest, reporting whether it was a hit.
func (c *ListCache) GetJSON(ctx context.Context, logical string, dest interface{}) bool {
	raw, err := c.cache.Get(ctx, c.versionedKey(ctx, logical))
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false
	}
	return true
}

func (c *ListCache) SetJSON(ctx context.Context, logical string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, c.versionedKey(ctx, logical), string(raw), c.ttl); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", logical), zap.Error(err))
	}
}

// InvalidateAll drops every cached list by bumping the version counter.
func (c *ListCache) InvalidateAll(ctx context.Context) {
	if _, err := c.cache.Incr(ctx, cacheVersionKey); err != nil {
		c.logger.Warn("cache invalidation failed", zap.Error(err))
	}
}
