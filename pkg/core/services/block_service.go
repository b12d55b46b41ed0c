package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/ordering"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/render"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/json"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/validation"
)

type BlockService struct {
	repo  ports.Repository
	cache ports.PageCache
	log   *zap.Logger
}

var _ ports.BlockService = (*BlockService)(nil)

func NewBlockService(repo ports.Repository, cache ports.PageCache, log *zap.Logger) *BlockService {
	return &BlockService{repo: repo, cache: cache, log: log.With(zap.String("component", "blocks"))}
}

func (s *BlockService) List(ctx context.Context, userID string) ([]domain.ContentBlock, error) {
	c, err := s.collection(ctx, userID)
	if err != nil {
		return nil, err
	}
	return c.Items(), nil
}

func (s *BlockService) collection(ctx context.Context, userID string) (ordering.Collection[domain.ContentBlock], error) {
	blocks, err := s.repo.ListBlocks(ctx, userID, false)
	if err != nil {
		return ordering.Collection[domain.ContentBlock]{}, err
	}
	c, repaired, err := repairOrder(ctx, s.log, "blocks", userID, blocks, s.repo.UpdateBlockPositions)
	if err != nil {
		s.log.Error("block order repair failed", zap.Error(err))
		return c, nil
	}
	if repaired {
		invalidateOwner(ctx, s.repo, s.cache, s.log, userID)
	}
	return c, nil
}

func (s *BlockService) Create(ctx context.Context, userID string, in ports.BlockInput) (*domain.ContentBlock, error) {
	kind, content, err := checkBlockInput(in)
	if err != nil {
		return nil, err
	}

	c, err := s.collection(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	block := domain.ContentBlock{
		UserID:    userID,
		Kind:      kind,
		Title:     strings.TrimSpace(in.Title),
		Content:   content,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Active != nil {
		block.Active = *in.Active
	}
	_, block = c.Append(block)

	if err := s.repo.CreateBlock(ctx, &block); err != nil {
		return nil, err
	}
	invalidateOwner(ctx, s.repo, s.cache, s.log, userID)
	return &block, nil
}

func (s *BlockService) Update(ctx context.Context, userID string, id int64, in ports.BlockInput) (*domain.ContentBlock, error) {
	kind, content, err := checkBlockInput(in)
	if err != nil {
		return nil, err
	}

	block, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	block.Kind = kind
	block.Title = strings.TrimSpace(in.Title)
	block.Content = content
	if in.Active != nil {
		block.Active = *in.Active
	}
	block.UpdatedAt = time.Now()

	if err := s.repo.UpdateBlock(ctx, block); err != nil {
		return nil, err
	}
	invalidateOwner(ctx, s.repo, s.cache, s.log, userID)
	return block, nil
}

func (s *BlockService) Delete(ctx context.Context, userID string, id int64) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.DeleteBlock(ctx, id); err != nil {
		return err
	}
	invalidateOwner(ctx, s.repo, s.cache, s.log, userID)
	return nil
}

func (s *BlockService) SetActive(ctx context.Context, userID string, id int64, active bool) (*domain.ContentBlock, error) {
	block, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	block.Active = active
	block.UpdatedAt = time.Now()
	if err := s.repo.UpdateBlock(ctx, block); err != nil {
		return nil, err
	}
	invalidateOwner(ctx, s.repo, s.cache, s.log, userID)
	return block, nil
}

func (s *BlockService) Move(ctx context.Context, userID string, id int64, from, to int) ([]domain.ContentBlock, error) {
	c, err := s.collection(ctx, userID)
	if err != nil {
		return nil, err
	}

	moved, err := c.Move(id, from, to)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateBlockPositions(ctx, userID, moved.Positions()); err != nil {
		return nil, err
	}

	invalidateOwner(ctx, s.repo, s.cache, s.log, userID)
	return moved.Items(), nil
}

func (s *BlockService) owned(ctx context.Context, userID string, id int64) (*domain.ContentBlock, error) {
	block, err := s.repo.GetBlock(ctx, id)
	if err != nil {
		return nil, err
	}
	if block == nil || block.UserID != userID {
		return nil, domain.ErrBlockNotFound
	}
	return block, nil
}

// checkBlockInput validates in against the rules of its block type.
// Gallery content is stored normalized.
func checkBlockInput(in ports.BlockInput) (domain.BlockKind, string, error) {
	if err := validation.Struct(in); err != nil {
		return "", "", err
	}
	kind, err := domain.ParseBlockKind(in.Type)
	if err != nil {
		return "", "", err
	}

	content := strings.TrimSpace(in.Content)
	switch kind {
	case domain.BlockGallery:
		images, err := render.ParseGallery(content)
		if err != nil {
			return "", "", &domain.ValidationError{Field: "content", Reason: "must be a JSON array of image URLs"}
		}
		if len(images) == 0 {
			return "", "", &domain.ValidationError{Field: "content", Reason: "gallery needs at least one image"}
		}
		return kind, galleryJSON(images), nil
	case domain.BlockImage:
		if content == "" {
			return "", "", &domain.ValidationError{Field: "content", Reason: "image URL is required"}
		}
	case domain.BlockText:
		if content == "" {
			return "", "", &domain.ValidationError{Field: "content", Reason: "text is required"}
		}
		// markup is replayed exactly as written
		return kind, in.Content, nil
	}
	return kind, content, nil
}

func galleryJSON(images []string) string {
	b, err := json.Marshal(images)
	if err != nil {
		return "[]"
	}
	return string(b)
}
