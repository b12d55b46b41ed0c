package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/ordering"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/render"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/theme"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/metrics"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

// PageService composes public profile pages and handles link activations.
type PageService struct {
	repo     ports.Repository
	cache    ports.PageCache
	emitter  ports.Emitter
	renderer *render.BlockRenderer
	log      *zap.Logger
}

var _ ports.PageService = (*PageService)(nil)

func NewPageService(repo ports.Repository, cache ports.PageCache, emitter ports.Emitter, log *zap.Logger) *PageService {
	log = log.With(zap.String("component", "page"))
	return &PageService{
		repo:     repo,
		cache:    cache,
		emitter:  emitter,
		renderer: render.NewBlockRenderer(log),
		log:      log,
	}
}

// NormalizeHandle strips the leading @ of a public address.
func NormalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}

// Compose returns the view model for username, or domain.ErrProfileNotFound.
// Failing to load links or blocks degrades to an empty section; only the
// profile lookup itself can fail the request.
func (s *PageService) Compose(ctx context.Context, username string) (*render.Page, error) {
	start := time.Now()
	defer func() { metrics.ComposeLatency.Observe(time.Since(start).Seconds()) }()

	username = NormalizeHandle(username)
	if username == "" {
		metrics.PageLookups.WithLabelValues("not_found").Inc()
		return nil, domain.ErrProfileNotFound
	}

	page, hit := s.cache.Get(ctx, username)
	if hit {
		metrics.PageLookups.WithLabelValues("hit").Inc()
	} else {
		profile, err := s.repo.GetProfileByUsername(ctx, username)
		if err != nil {
			metrics.PageLookups.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("load profile %q: %w", username, err)
		}
		if profile == nil {
			metrics.PageLookups.WithLabelValues("not_found").Inc()
			return nil, domain.ErrProfileNotFound
		}
		metrics.PageLookups.WithLabelValues("miss").Inc()

		var complete bool
		page, complete = s.build(ctx, profile)
		if complete {
			s.cache.Set(ctx, username, page)
		}
	}

	s.emitter.Log(ctx, domain.EventProfileView, map[string]any{
		"profile_id": page.ProfileID,
		"username":   page.Header.Username,
		"template":   page.Theme.Template,
	})
	metrics.PageViews.WithLabelValues(page.Theme.Template).Inc()

	return page, nil
}

// build renders profile. complete is false when a section had to be left empty.
func (s *PageService) build(ctx context.Context, profile *domain.Profile) (*render.Page, bool) {
	var (
		links   []domain.Link
		blocks  []domain.ContentBlock
		linkErr error
		blkErr  error
	)

	var g errgroup.Group
	g.Go(func() error {
		links, linkErr = s.repo.ListLinks(ctx, profile.UserID, true)
		return nil
	})
	g.Go(func() error {
		blocks, blkErr = s.repo.ListBlocks(ctx, profile.UserID, true)
		return nil
	})
	_ = g.Wait()

	if linkErr != nil {
		s.log.Error("loading links failed, rendering without them",
			zap.String("username", profile.Username), zap.Error(linkErr))
		links = nil
	}
	if blkErr != nil {
		s.log.Error("loading content blocks failed, rendering without them",
			zap.String("username", profile.Username), zap.Error(blkErr))
		blocks = nil
	}

	params := theme.Resolve(theme.SettingsFor(profile))
	page := &render.Page{
		ProfileID: profile.ID,
		Header:    render.NewHeader(profile),
		Theme:     params,
		Blocks:    []render.BlockUnit{},
		Links:     []render.LinkUnit{},
	}

	// the query already filters and orders; the orderer guards against stale rows
	for b := range ordering.New(blocks).ActiveInOrder() {
		page.Blocks = append(page.Blocks, s.renderer.Render(b, params))
	}
	for l := range ordering.New(links).ActiveInOrder() {
		page.Links = append(page.Links, render.RenderLink(l, params))
	}

	return page, linkErr == nil && blkErr == nil
}

// ResolveClick records a link_click and returns the destination. The
// redirect does not depend on the analytics outcome.
func (s *PageService) ResolveClick(ctx context.Context, linkID int64) (string, error) {
	link, err := s.repo.GetLink(ctx, linkID)
	if err != nil {
		return "", err
	}
	if link == nil || !link.Active {
		return "", domain.ErrLinkNotFound
	}

	attrs := map[string]any{
		"link_id":    link.ID,
		"link_title": link.Title,
	}
	profile, err := s.repo.GetProfileByUserID(ctx, link.UserID)
	if err != nil {
		s.log.Warn("click owner lookup failed", zap.Int64("link_id", link.ID), zap.Error(err))
	}
	if profile != nil {
		attrs["profile_id"] = profile.ID
		attrs["username"] = profile.Username
	}

	s.emitter.Log(ctx, domain.EventLinkClick, attrs)
	metrics.LinkClicks.Inc()

	return link.URL, nil
}
