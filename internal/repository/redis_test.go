package repository

import (
	"context"
	"testing"
	"time"

	"catalog-service/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return &RedisRepo{client: client}, mr
}

func fill(t *testing.T, cache *RedisRepo, artwork *domain.Artwork, ttl time.Duration) {
	t.Helper()
	ctx := context.Background()
	version, err := cache.Version(ctx, artwork.ID)
	require.NoError(t, err)
	require.NoError(t, cache.Fill(ctx, artwork, version, ttl))
}

func TestRedisRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		cache, _ := newTestCache(t)
		got, err := cache.Get(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("fill then get", func(t *testing.T) {
		cache, mr := newTestCache(t)
		fill(t, cache, domain.NewArtwork(7, "Nighthawks", "Hopper", []string{"oil"}), time.Minute)
		assert.True(t, mr.Exists("artwork:7"))

		got, err := cache.Get(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Nighthawks", got.Title)
		assert.Equal(t, []string{"oil"}, got.Tags)
		assert.Empty(t, got.Links)
	})

	t.Run("ttl expires", func(t *testing.T) {
		cache, mr := newTestCache(t)
		fill(t, cache, domain.NewArtwork(3, "a", "b", nil), time.Second)
		mr.FastForward(2 * time.Second)

		got, err := cache.Get(ctx, 3)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalidate drops entry and bumps version", func(t *testing.T) {
		cache, mr := newTestCache(t)
		fill(t, cache, domain.NewArtwork(9, "a", "b", nil), time.Minute)

		require.NoError(t, cache.Invalidate(ctx, 9))
		assert.False(t, mr.Exists("artwork:9"))
		version, err := cache.Version(ctx, 9)
		require.NoError(t, err)
		assert.Equal(t, int64(1), version)
	})

	t.Run("fill after invalidate is dropped", func(t *testing.T) {
		cache, mr := newTestCache(t)
		stale := domain.NewArtwork(4, "Old", "b", nil)

		version, err := cache.Version(ctx, 4)
		require.NoError(t, err)
		require.NoError(t, cache.Invalidate(ctx, 4))
		require.NoError(t, cache.Fill(ctx, stale, version, time.Minute))

		assert.False(t, mr.Exists("artwork:4"))
		got, err := cache.Get(ctx, 4)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("disabled", func(t *testing.T) {
		cache := &RedisRepo{}
		version, err := cache.Version(ctx, 1)
		require.NoError(t, err)
		require.NoError(t, cache.Fill(ctx, domain.NewArtwork(1, "a", "b", nil), version, time.Minute))
		got, err := cache.Get(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, cache.Invalidate(ctx, 1))
	})
}
