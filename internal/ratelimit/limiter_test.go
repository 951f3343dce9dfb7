package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewLimiterWithConfig(client, limit, window), mr
}

func TestLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("allows requests under the limit", func(t *testing.T) {
		limiter, _ := newTestLimiter(t, 3, time.Minute)

		for i := 0; i < 3; i++ {
			exceeded, err := limiter.CheckIPRateLimit(ctx, "1.2.3.4", "login")
			require.NoError(t, err)
			assert.False(t, exceeded, "request %d should be allowed", i+1)
			require.NoError(t, limiter.RecordIPRequest(ctx, "1.2.3.4", "login"))
		}
	})

	t.Run("blocks requests over the limit", func(t *testing.T) {
		limiter, _ := newTestLimiter(t, 3, time.Minute)

		for i := 0; i < 3; i++ {
			require.NoError(t, limiter.RecordIPRequest(ctx, "1.2.3.4", "login"))
		}

		exceeded, err := limiter.CheckIPRateLimit(ctx, "1.2.3.4", "login")
		require.NoError(t, err)
		assert.True(t, exceeded)
	})

	t.Run("limits are scoped per IP and purpose", func(t *testing.T) {
		limiter, _ := newTestLimiter(t, 1, time.Minute)

		require.NoError(t, limiter.RecordIPRequest(ctx, "1.2.3.4", "login"))

		exceeded, err := limiter.CheckIPRateLimit(ctx, "5.6.7.8", "login")
		require.NoError(t, err)
		assert.False(t, exceeded, "other IPs are unaffected")

		exceeded, err = limiter.CheckIPRateLimit(ctx, "1.2.3.4", "signup")
		require.NoError(t, err)
		assert.False(t, exceeded, "other purposes are unaffected")
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		limiter, mr := newTestLimiter(t, 1, time.Minute)

		require.NoError(t, limiter.RecordIPRequest(ctx, "1.2.3.4", "login"))

		exceeded, err := limiter.CheckIPRateLimit(ctx, "1.2.3.4", "login")
		require.NoError(t, err)
		require.True(t, exceeded)

		mr.FastForward(2 * time.Minute)

		exceeded, err = limiter.CheckIPRateLimit(ctx, "1.2.3.4", "login")
		require.NoError(t, err)
		assert.False(t, exceeded)
	})
}
