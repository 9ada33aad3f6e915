package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type brokenCache struct{}

func (brokenCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return errors.New("connection refused")
}

func (brokenCache) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("connection refused")
}

func (brokenCache) Del(ctx context.Context, keys ...string) error {
	return errors.New("connection refused")
}

func (brokenCache) Incr(ctx context.Context, key string) (int64, error) {
	return 0, errors.New("connection refused")
}

func TestListCacheRoundTrip(t *testing.T) {
	cache, _ := newTestListCache()
	ctx := context.Background()

	type payload struct {
		Items []string `json:"items"`
		Total uint64   `json:"total"`
	}

	var out payload
	assert.False(t, cache.GetJSON(ctx, "factories:1:10", &out))

	cache.SetJSON(ctx, "factories:1:10", payload{Items: []string{"pusan"}, Total: 1})
	require.True(t, cache.GetJSON(ctx, "factories:1:10", &out))
	assert.Equal(t, []string{"pusan"}, out.Items)
	assert.Equal(t, uint64(1), out.Total)
}

func TestListCacheInvalidateAllOrphansEveryKey(t *testing.T) {
	cache, backing := newTestListCache()
	ctx := context.Background()

	cache.SetJSON(ctx, "factories:1:10", "a")
	cache.SetJSON(ctx, "equipment:1:10", "b")

	cache.InvalidateAll(ctx)

	var out string
	assert.False(t, cache.GetJSON(ctx, "factories:1:10", &out))
	assert.False(t, cache.GetJSON(ctx, "equipment:1:10", &out))

	// The orphans stay behind for the TTL to reap, nothing is deleted.
	assert.Len(t, backing.values, 2)
}

func TestListCacheDegradesWhenRedisIsDown(t *testing.T) {
	cache := NewListCache(brokenCache{}, time.Minute, zap.NewNop())
	ctx := context.Background()

	var out string
	assert.False(t, cache.GetJSON(ctx, "factories:1:10", &out))
	cache.SetJSON(ctx, "factories:1:10", "a")
	cache.InvalidateAll(ctx)
}
