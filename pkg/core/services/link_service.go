package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/ordering"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/validation"
)

type LinkService struct {
	repo  ports.Repository
	cache ports.PageCache
	log   *zap.Logger
}

var _ ports.LinkService = (*LinkService)(nil)

func NewLinkService(repo ports.Repository, cache ports.PageCache, log *zap.Logger) *LinkService {
	return &LinkService{repo: repo, cache: cache, log: log.With(zap.String("component", "links"))}
}

// List returns every link of userID in display order, repairing positions when they collide.
func (s *LinkService) List(ctx context.Context, userID string) ([]domain.Link, error) {
	c, err := s.collection(ctx, userID)
	if err != nil {
		return nil, err
	}
	return c.Items(), nil
}

func (s *LinkService) collection(ctx context.Context, userID string) (ordering.Collection[domain.Link], error) {
	links, err := s.repo.ListLinks(ctx, userID, false)
	if err != nil {
		return ordering.Collection[domain.Link]{}, err
	}
	c, repaired, err := repairOrder(ctx, s.log, "links", userID, links, s.repo.UpdateLinkPositions)
	if err != nil {
		// serve the stored order; the next read or the reconcile job retries
		s.log.Error("link order repair failed", zap.Error(err))
		return c, nil
	}
	if repaired {
		invalidateOwner(ctx, s.repo, s.cache, s.log, userID)
	}
	return c, nil
}

func (s *LinkService) Create(ctx context.Context, userID string, in ports.LinkInput) (*domain.Link, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	c, err := s.collection(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	link := domain.Link{
		UserID:    userID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyLinkInput(&link, in)
	_, link = c.Append(link)

	if err := s.repo.CreateLink(ctx, &link); err != nil {
		return nil, err
	}
	invalidateOwner(ctx, s.repo, s.cache, s.log, userID)
	return &link, nil
}

func (s *LinkService) Update(ctx context.Context, userID string, id int64, in ports.LinkInput) (*domain.Link, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	link, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	applyLinkInput(link, in)
	link.UpdatedAt = time.Now()

	if err := s.repo.UpdateLink(ctx, link); err != nil {
		return nil, err
	}
	invalidateOwner(ctx, s.repo, s.cache, s.log, userID)
	return link, nil
}

// Delete removes the link. Remaining positions keep their gap until the next move.
func (s *LinkService) Delete(ctx context.Context, userID string, id int64) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.DeleteLink(ctx, id); err != nil {
		return err
	}
	invalidateOwner(ctx, s.repo, s.cache, s.log, userID)
	return nil
}

func (s *LinkService) SetActive(ctx context.Context, userID string, id int64, active bool) (*domain.Link, error) {
	link, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	link.Active = active
	link.UpdatedAt = time.Now()
	if err := s.repo.UpdateLink(ctx, link); err != nil {
		return nil, err
	}
	invalidateOwner(ctx, s.repo, s.cache, s.log, userID)
	return link, nil
}

// Move relocates link id from index from to index to and persists every
// position in one batch. On error nothing is written.
func (s *LinkService) Move(ctx context.Context, userID string, id int64, from, to int) ([]domain.Link, error) {
	c, err := s.collection(ctx, userID)
	if err != nil {
		return nil, err
	}

	moved, err := c.Move(id, from, to)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateLinkPositions(ctx, userID, moved.Positions()); err != nil {
		return nil, err
	}

	invalidateOwner(ctx, s.repo, s.cache, s.log, userID)
	return moved.Items(), nil
}

func (s *LinkService) owned(ctx context.Context, userID string, id int64) (*domain.Link, error) {
	link, err := s.repo.GetLink(ctx, id)
	if err != nil {
		return nil, err
	}
	if link == nil || link.UserID != userID {
		return nil, domain.ErrLinkNotFound
	}
	return link, nil
}

func applyLinkInput(link *domain.Link, in ports.LinkInput) {
	link.Title = in.Title
	link.URL = domain.NormalizeURL(in.URL)
	link.Icon = in.Icon
	if link.Icon == "" {
		link.Icon = domain.IconDefault
	}
	link.IconStyle = in.IconStyle
	if link.IconStyle == "" {
		link.IconStyle = domain.IconStyleFilled
	}
	link.CustomIconURL = in.CustomIconURL
	if link.Icon != domain.IconCustom {
		link.CustomIconURL = ""
	}
	link.Description = in.Description
	if in.Active != nil {
		link.Active = *in.Active
	}
}
