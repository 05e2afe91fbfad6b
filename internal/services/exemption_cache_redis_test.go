package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unations/tax-engine/internal/services"
	"github.com/unations/tax-engine/internal/types/business"
)

func newRedisCache(t *testing.T) (*services.RedisExemptionCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	cache := services.NewRedisExemptionCacheFromClient(client)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, srv
}

func TestRedisExemptionCache(t *testing.T) {
	ctx := context.Background()
	decision := business.NoExemption("no claim")
	tags := []string{"card:" + activeCard, "band:601"}

	t.Run("store then lookup", func(t *testing.T) {
		cache, _ := newRedisCache(t)
		got, stamp, err := cache.Lookup(ctx, "k", tags)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Equal(t, int64(0), stamp[tags[0]])

		require.NoError(t, cache.Store(ctx, "k", stamp, decision, time.Minute))
		got, _, err = cache.Lookup(ctx, "k", tags)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, decision, *got)
	})

	t.Run("bumped generation misses", func(t *testing.T) {
		cache, _ := newRedisCache(t)
		_, stamp, err := cache.Lookup(ctx, "k", tags)
		require.NoError(t, err)
		require.NoError(t, cache.Store(ctx, "k", stamp, decision, time.Minute))

		require.NoError(t, cache.InvalidateTag(ctx, tags[1]))
		got, fresh, err := cache.Lookup(ctx, "k", tags)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Equal(t, int64(1), fresh[tags[1]])
	})

	t.Run("store after invalidation is dropped", func(t *testing.T) {
		cache, srv := newRedisCache(t)
		_, stamp, err := cache.Lookup(ctx, "k", tags)
		require.NoError(t, err)

		// a record write lands between resolution and the cache write
		require.NoError(t, cache.InvalidateTag(ctx, tags[0]))
		require.NoError(t, cache.Store(ctx, "k", stamp, decision, time.Minute))

		assert.False(t, srv.Exists("k"))
		got, _, err := cache.Lookup(ctx, "k", tags)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("entries expire with their ttl", func(t *testing.T) {
		cache, srv := newRedisCache(t)
		_, stamp, err := cache.Lookup(ctx, "k", tags)
		require.NoError(t, err)
		require.NoError(t, cache.Store(ctx, "k", stamp, decision, time.Minute))

		srv.FastForward(2 * time.Minute)
		got, _, err := cache.Lookup(ctx, "k", tags)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("non-positive ttl is not stored", func(t *testing.T) {
		cache, srv := newRedisCache(t)
		_, stamp, err := cache.Lookup(ctx, "k", tags)
		require.NoError(t, err)
		require.NoError(t, cache.Store(ctx, "k", stamp, decision, 0))
		assert.False(t, srv.Exists("k"))
	})

	t.Run("invalidate drops one entry", func(t *testing.T) {
		cache, srv := newRedisCache(t)
		_, stamp, err := cache.Lookup(ctx, "k", tags)
		require.NoError(t, err)
		require.NoError(t, cache.Store(ctx, "k", stamp, decision, time.Minute))
		require.NoError(t, cache.Invalidate(ctx, "k"))
		assert.False(t, srv.Exists("k"))
	})

	t.Run("server loss surfaces as an error", func(t *testing.T) {
		cache, srv := newRedisCache(t)
		srv.Close()
		_, _, err := cache.Lookup(ctx, "k", tags)
		assert.Error(t, err)
	})
}
