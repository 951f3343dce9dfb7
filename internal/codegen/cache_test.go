package codegen

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCache(client), mr
}

func TestCache(t *testing.T) {
	ctx := context.Background()

	result := &Result{
		Frontend: Frontend{HTML: "<html></html>", CSS: "body {}", JS: "console.log(1)"},
		Backend:  Backend{Go: "package main"},
		Database: Database{Schema: "CREATE TABLE users ();"},
	}

	t.Run("miss returns nil without error", func(t *testing.T) {
		cache, _ := newTestCache(t)

		got, err := cache.Get(ctx, uuid.New(), time.Now())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		cache, _ := newTestCache(t)

		projectID := uuid.New()
		updatedAt := time.Now()

		require.NoError(t, cache.Set(ctx, projectID, updatedAt, result))

		got, err := cache.Get(ctx, projectID, updatedAt)
		require.NoError(t, err)
		assert.Equal(t, result, got)
	})

	t.Run("a newer snapshot misses the old entry", func(t *testing.T) {
		cache, _ := newTestCache(t)

		projectID := uuid.New()
		updatedAt := time.Now()

		require.NoError(t, cache.Set(ctx, projectID, updatedAt, result))

		got, err := cache.Get(ctx, projectID, updatedAt.Add(time.Second))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("entries expire", func(t *testing.T) {
		cache, mr := newTestCache(t)

		projectID := uuid.New()
		updatedAt := time.Now()

		require.NoError(t, cache.Set(ctx, projectID, updatedAt, result))
		mr.FastForward(cacheTTL + time.Minute)

		got, err := cache.Get(ctx, projectID, updatedAt)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("corrupt entry is treated as a miss", func(t *testing.T) {
		cache, mr := newTestCache(t)

		projectID := uuid.New()
		updatedAt := time.Now()

		mr.Set(cacheKey(projectID, updatedAt), "{not json")

		got, err := cache.Get(ctx, projectID, updatedAt)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
