package ratelimiter_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-screener/internal/service/ratelimiter"
)

func newLimiter(t *testing.T, cfg ratelimiter.BucketConfig) (*ratelimiter.RedisLuaLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return ratelimiter.NewRedisLuaLimiter(rdb, cfg), mr
}

func TestBucketConfigFromPerMinute(t *testing.T) {
	t.Parallel()
	cfg := ratelimiter.NewBucketConfigFromPerMinute(60)
	assert.Equal(t, int64(60), cfg.Capacity)
	assert.InDelta(t, 1.0, cfg.RefillRate, 1e-9)

	assert.Equal(t, ratelimiter.BucketConfig{}, ratelimiter.NewBucketConfigFromPerMinute(0))
}

func TestAllowConsumesTokens(t *testing.T) {
	t.Parallel()
	l, _ := newLimiter(t, ratelimiter.BucketConfig{Capacity: 3, RefillRate: 0.001})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, err := l.Allow(ctx, "ip1", 1)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should pass", i)
	}
	allowed, retryAfter, err := l.Allow(ctx, "ip1", 1)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Positive(t, retryAfter)
}

func TestAllowKeysAreIndependent(t *testing.T) {
	t.Parallel()
	l, _ := newLimiter(t, ratelimiter.BucketConfig{Capacity: 1, RefillRate: 0.001})
	ctx := context.Background()

	allowed, _, err := l.Allow(ctx, "ip1", 1)
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _, err = l.Allow(ctx, "ip2", 1)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestAllowZeroBucketDisablesLimiting(t *testing.T) {
	t.Parallel()
	l, _ := newLimiter(t, ratelimiter.BucketConfig{})
	for i := 0; i < 10; i++ {
		allowed, _, err := l.Allow(context.Background(), "ip1", 1)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestAllowFailsOpenOnRedisError(t *testing.T) {
	t.Parallel()
	l, mr := newLimiter(t, ratelimiter.BucketConfig{Capacity: 1, RefillRate: 1})
	mr.Close()

	allowed, _, err := l.Allow(context.Background(), "ip1", 1)
	assert.Error(t, err)
	assert.True(t, allowed)
}

func TestSetBucketConfigOverridesDefault(t *testing.T) {
	t.Parallel()
	l, _ := newLimiter(t, ratelimiter.BucketConfig{Capacity: 100, RefillRate: 10})
	l.SetBucketConfig("tight", ratelimiter.BucketConfig{Capacity: 1, RefillRate: 0.001})
	ctx := context.Background()

	allowed, _, err := l.Allow(ctx, "tight", 1)
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _, err = l.Allow(ctx, "tight", 1)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestNilLimiterAlwaysAllows(t *testing.T) {
	t.Parallel()
	var l *ratelimiter.RedisLuaLimiter
	allowed, _, err := l.Allow(context.Background(), "any", 1)
	require.NoError(t, err)
	assert.True(t, allowed)
}
