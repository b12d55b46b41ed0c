package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/ordering"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/validation"
)

// SnapshotService moves a user's authoring state in and out of the store.
type SnapshotService struct {
	repo  ports.Repository
	cache ports.PageCache
	log   *zap.Logger
}

func NewSnapshotService(repo ports.Repository, cache ports.PageCache, log *zap.Logger) *SnapshotService {
	return &SnapshotService{repo: repo, cache: cache, log: log.With(zap.String("component", "snapshot"))}
}

// Export returns the profile, links and blocks behind username. Inactive
// items are included.
func (s *SnapshotService) Export(ctx context.Context, username string) (*domain.Snapshot, error) {
	p, err := s.repo.GetProfileByUsername(ctx, NormalizeHandle(username))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}

	links, err := s.repo.ListLinks(ctx, p.UserID, false)
	if err != nil {
		return nil, fmt.Errorf("export links: %w", err)
	}
	blocks, err := s.repo.ListBlocks(ctx, p.UserID, false)
	if err != nil {
		return nil, fmt.Errorf("export blocks: %w", err)
	}

	return &domain.Snapshot{
		Profile: p,
		Links:   ordering.New(links).Reindex().Items(),
		Blocks:  ordering.New(blocks).Reindex().Items(),
	}, nil
}

// Import replaces the links and blocks of the snapshot's owner and updates
// or creates the profile. Click counters are not restored. Nothing is written
// unless every item is valid, and the replace happens in one transaction.
func (s *SnapshotService) Import(ctx context.Context, snap *domain.Snapshot) error {
	if snap == nil || snap.Profile == nil || snap.Profile.UserID == "" {
		return &domain.ValidationError{Field: "profile", Reason: "snapshot has no owner"}
	}
	in := *snap.Profile
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	if err := checkUsername(in.Username); err != nil {
		return err
	}
	userID := in.UserID
	now := time.Now()

	links := ordering.New(snap.Links).Reindex().Items()
	for i := range links {
		l := &links[i]
		if err := validation.Struct(ports.LinkInput{
			Title:         l.Title,
			URL:           l.URL,
			Icon:          l.Icon,
			IconStyle:     l.IconStyle,
			CustomIconURL: l.CustomIconURL,
			Description:   l.Description,
		}); err != nil {
			return fmt.Errorf("import link %d: %w", i, err)
		}
		l.ID, l.UserID, l.Clicks = 0, userID, 0
		l.CreatedAt, l.UpdatedAt = now, now
	}

	blocks := ordering.New(snap.Blocks).Reindex().Items()
	for i := range blocks {
		b := &blocks[i]
		kind, content, err := checkBlockInput(ports.BlockInput{Type: string(b.Kind), Title: b.Title, Content: b.Content})
		if err != nil {
			return fmt.Errorf("import block %d: %w", i, err)
		}
		b.Kind, b.Content = kind, content
		b.ID, b.UserID = 0, userID
		b.CreatedAt, b.UpdatedAt = now, now
	}

	existing, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return err
	}
	in.ID, in.CreatedAt, in.UpdatedAt = 0, now, now
	if existing != nil {
		in.ID, in.CreatedAt = existing.ID, existing.CreatedAt
	}

	if err := s.repo.ReplaceOwnerContent(ctx, &in, links, blocks); err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}

	if existing != nil {
		s.cache.Invalidate(ctx, existing.Username)
	}
	s.cache.Invalidate(ctx, in.Username)
	s.log.Info("imported snapshot",
		zap.String("user_id", userID),
		zap.Int("links", len(links)),
		zap.Int("blocks", len(blocks)),
	)
	return nil
}
