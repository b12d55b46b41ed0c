package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/render"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	_, ok := c.Get(ctx, "jane")
	assert.False(t, ok)

	page := &render.Page{ProfileID: 7, Header: render.Header{Username: "jane"}}
	c.Set(ctx, "Jane", page)

	got, ok := c.Get(ctx, "jane")
	require.True(t, ok)
	assert.Equal(t, int64(7), got.ProfileID)

	c.Invalidate(ctx, "JANE")
	_, ok = c.Get(ctx, "jane")
	assert.False(t, ok)
}

func TestMemoryCacheExpires(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10 * time.Millisecond)
	c.Set(ctx, "jane", &render.Page{})

	assert.Eventually(t, func() bool {
		_, ok := c.Get(ctx, "jane")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestRedisCacheTreatsErrorsAsMiss(t *testing.T) {
	// nothing listens on this port; every call fails fast
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	c := NewRedisCacheFromClient(client, time.Minute, zap.NewNop())

	ctx := context.Background()
	assert.NotPanics(t, func() {
		c.Set(ctx, "jane", &render.Page{ProfileID: 1})
		c.Invalidate(ctx, "jane")
	})
	_, ok := c.Get(ctx, "jane")
	assert.False(t, ok)
}

func TestNoop(t *testing.T) {
	var c Noop
	c.Set(context.Background(), "jane", &render.Page{})
	_, ok := c.Get(context.Background(), "jane")
	assert.False(t, ok)
}
