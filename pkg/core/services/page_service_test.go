package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/adapters/cache"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/render"
)

func TestComposeShowsActiveLinksInOrder(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	emitter := &recordingEmitter{}
	svc := NewPageService(repo, cache.Noop{}, emitter, zap.NewNop())

	p := seedProfile(t, repo, "u1", "jane")
	// inserted out of order on purpose
	seedLink(t, repo, "u1", "hidden", 2, false)
	second := seedLink(t, repo, "u1", "blog", 1, true)
	first := seedLink(t, repo, "u1", "shop", 0, true)

	page, err := svc.Compose(ctx, "jane")
	require.NoError(t, err)

	require.Len(t, page.Links, 2)
	assert.Equal(t, first.ID, page.Links[0].ID)
	assert.Equal(t, second.ID, page.Links[1].ID)
	assert.Equal(t, render.ClickPath(first.ID), page.Links[0].Href)
	assert.Equal(t, "designer", page.Theme.Template)
	assert.Equal(t, "jane", page.Header.Username)

	views := emitter.named(domain.EventProfileView)
	require.Len(t, views, 1)
	assert.Equal(t, p.ID, views[0].Int64("profile_id"))
	assert.Equal(t, "jane", views[0].String("username"))
	assert.Equal(t, "designer", views[0].String("template"))
}

func TestComposeAcceptsAtPrefixAndAnyCase(t *testing.T) {
	repo := newRepo(t)
	svc := NewPageService(repo, cache.Noop{}, &recordingEmitter{}, zap.NewNop())
	seedProfile(t, repo, "u1", "Jane")

	for _, handle := range []string{"@jane", "JANE", " jane "} {
		page, err := svc.Compose(context.Background(), handle)
		require.NoError(t, err, handle)
		assert.Equal(t, "Jane", page.Header.Username)
	}
}

func TestComposeUnknownProfile(t *testing.T) {
	repo := newRepo(t)
	emitter := &recordingEmitter{}
	svc := NewPageService(repo, cache.Noop{}, emitter, zap.NewNop())

	for _, handle := range []string{"nonexistent-user", "", "@"} {
		_, err := svc.Compose(context.Background(), handle)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound, handle)
	}
	assert.Empty(t, emitter.events)
}

func TestComposeDegradesWhenLinksFail(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	pages := cache.NewMemoryCache(time.Minute)
	svc := NewPageService(repo, pages, &recordingEmitter{}, zap.NewNop())

	seedProfile(t, repo, "u1", "jane")
	seedLink(t, repo, "u1", "shop", 0, true)
	_, err := NewBlockService(repo, cache.Noop{}, zap.NewNop()).Create(ctx, "u1", blockInput("text", "<p>hi</p>"))
	require.NoError(t, err)

	repo.linksErr = errors.New("db gone")
	page, err := svc.Compose(ctx, "jane")
	require.NoError(t, err)
	assert.Empty(t, page.Links)
	assert.Len(t, page.Blocks, 1)

	_, cached := pages.Get(ctx, "jane")
	assert.False(t, cached, "a degraded page must not be cached")

	repo.linksErr = nil
	page, err = svc.Compose(ctx, "jane")
	require.NoError(t, err)
	assert.Len(t, page.Links, 1)

	_, cached = pages.Get(ctx, "jane")
	assert.True(t, cached)
}

func TestComposeCachedPageStillEmitsView(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	emitter := &recordingEmitter{}
	pages := cache.NewMemoryCache(time.Minute)
	svc := NewPageService(repo, pages, emitter, zap.NewNop())
	seedProfile(t, repo, "u1", "jane")

	for i := 0; i < 3; i++ {
		_, err := svc.Compose(ctx, "jane")
		require.NoError(t, err)
	}
	assert.Len(t, emitter.named(domain.EventProfileView), 3)
}

func TestComposeSeesEditsAfterInvalidation(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	pages := cache.NewMemoryCache(time.Minute)
	pagesSvc := NewPageService(repo, pages, &recordingEmitter{}, zap.NewNop())
	links := NewLinkService(repo, pages, zap.NewNop())
	seedProfile(t, repo, "u1", "jane")

	page, err := pagesSvc.Compose(ctx, "jane")
	require.NoError(t, err)
	require.Empty(t, page.Links)

	_, err = links.Create(ctx, "u1", linkInput("shop", "shop.example.com"))
	require.NoError(t, err)

	page, err = pagesSvc.Compose(ctx, "jane")
	require.NoError(t, err)
	require.Len(t, page.Links, 1)
	assert.Equal(t, "https://shop.example.com", page.Links[0].URL)
}

func TestResolveClick(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	emitter := &recordingEmitter{}
	svc := NewPageService(repo, cache.Noop{}, emitter, zap.NewNop())

	p := seedProfile(t, repo, "u1", "jane")
	shop := seedLink(t, repo, "u1", "shop", 0, true)
	hidden := seedLink(t, repo, "u1", "hidden", 1, false)

	dest, err := svc.ResolveClick(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, shop.URL, dest)

	clicks := emitter.named(domain.EventLinkClick)
	require.Len(t, clicks, 1)
	assert.Equal(t, shop.ID, clicks[0].Int64("link_id"))
	assert.Equal(t, "shop", clicks[0].String("link_title"))
	assert.Equal(t, p.ID, clicks[0].Int64("profile_id"))
	assert.Equal(t, "jane", clicks[0].String("username"))

	_, err = svc.ResolveClick(ctx, hidden.ID)
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
	_, err = svc.ResolveClick(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
	assert.Len(t, emitter.named(domain.EventLinkClick), 1)
}
