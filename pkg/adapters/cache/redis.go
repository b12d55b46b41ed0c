package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/render"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/json"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

// RedisCache shares composed pages between instances. Redis errors are
// logged and treated as misses so the public page keeps rendering.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

var _ ports.PageCache = (*RedisCache)(nil)

// NewRedisCache connects to url (redis://...) and verifies the connection.
func NewRedisCache(ctx context.Context, url string, ttl time.Duration, log *zap.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewRedisCacheFromClient(client, ttl, log), nil
}

func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, log: log.With(zap.String("component", "page_cache"))}
}

func (c *RedisCache) Get(ctx context.Context, username string) (*render.Page, bool) {
	data, err := c.client.Get(ctx, key(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn("page cache read failed", zap.String("username", username), zap.Error(err))
		return nil, false
	}

	var page render.Page
	if err := json.Unmarshal(data, &page); err != nil {
		c.log.Warn("page cache entry undecodable", zap.String("username", username), zap.Error(err))
		return nil, false
	}
	return &page, true
}

func (c *RedisCache) Set(ctx context.Context, username string, page *render.Page) {
	data, err := json.Marshal(page)
	if err != nil {
		c.log.Warn("page cache encode failed", zap.String("username", username), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key(username), data, c.ttl).Err(); err != nil {
		c.log.Warn("page cache write failed", zap.String("username", username), zap.Error(err))
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, username string) {
	if err := c.client.Del(ctx, key(username)).Err(); err != nil {
		c.log.Warn("page cache invalidate failed", zap.String("username", username), zap.Error(err))
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
