package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aavkar_pos/internal/config"
)

func TestNilCacheIsAMiss(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	var out map[string]int
	assert.False(t, c.GetJSON(ctx, "k", &out))
	c.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute)
	c.DeletePrefix(ctx, "k")

	n, err := c.Incr(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestConnectRequiresHost(t *testing.T) {
	_, err := Connect(context.Background(), config.RedisConfig{})
	assert.Error(t, err)
}

// liveCache needs a disposable Redis, e.g. REDIS_TEST_HOST=localhost:6379.
func liveCache(t *testing.T) (*Cache, string) {
	t.Helper()
	host := os.Getenv("REDIS_TEST_HOST")
	if host == "" {
		t.Skip("REDIS_TEST_HOST not set")
	}
	rdb, err := Connect(context.Background(), config.RedisConfig{Host: host})
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })
	return New(rdb, zap.NewNop()), "test:" + uuid.NewString() + ":"
}

func TestRedisRoundTripAndInvalidate(t *testing.T) {
	c, prefix := liveCache(t)
	ctx := context.Background()

	c.SetJSON(ctx, prefix+"a", map[string]int{"n": 1}, time.Minute)
	c.SetJSON(ctx, prefix+"b", map[string]int{"n": 2}, time.Minute)

	var out map[string]int
	require.True(t, c.GetJSON(ctx, prefix+"b", &out))
	assert.Equal(t, 2, out["n"])

	c.DeletePrefix(ctx, prefix)
	assert.False(t, c.GetJSON(ctx, prefix+"a", &out))
	assert.False(t, c.GetJSON(ctx, prefix+"b", &out))
}

func TestRedisIncrCountsWithinWindow(t *testing.T) {
	c, prefix := liveCache(t)
	ctx := context.Background()
	t.Cleanup(func() { c.DeletePrefix(context.Background(), prefix) })

	for want := int64(1); want <= 3; want++ {
		n, err := c.Incr(ctx, prefix+"hits", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
}
