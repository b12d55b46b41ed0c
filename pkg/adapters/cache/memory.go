// Package cache provides PageCache implementations for composed public pages.
package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/render"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

// MemoryCache keeps pages in process. Suitable for a single instance.
type MemoryCache struct {
	store *gocache.Cache
}

var _ ports.PageCache = (*MemoryCache)(nil)

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(ttl, 2*ttl)}
}

func (c *MemoryCache) Get(_ context.Context, username string) (*render.Page, bool) {
	v, ok := c.store.Get(key(username))
	if !ok {
		return nil, false
	}
	page, ok := v.(*render.Page)
	return page, ok
}

func (c *MemoryCache) Set(_ context.Context, username string, page *render.Page) {
	c.store.Set(key(username), page, gocache.DefaultExpiration)
}

func (c *MemoryCache) Invalidate(_ context.Context, username string) {
	c.store.Delete(key(username))
}

// Usernames are case-insensitive.
func key(username string) string {
	return "linkpage:page:" + strings.ToLower(username)
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) (*render.Page, bool) { return nil, false }
func (Noop) Set(context.Context, string, *render.Page)        {}
func (Noop) Invalidate(context.Context, string)               {}
