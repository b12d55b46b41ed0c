package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

// ReconcileService repairs colliding positions across every owner.
type ReconcileService struct {
	repo  ports.Repository
	cache ports.PageCache
	log   *zap.Logger
}

func NewReconcileService(repo ports.Repository, cache ports.PageCache, log *zap.Logger) *ReconcileService {
	return &ReconcileService{repo: repo, cache: cache, log: log.With(zap.String("component", "reconcile"))}
}

// ReconcileUser repairs the links and blocks of one owner and reports how
// many collections were rewritten.
func (s *ReconcileService) ReconcileUser(ctx context.Context, userID string) (int, error) {
	repaired := 0

	links, err := s.repo.ListLinks(ctx, userID, false)
	if err != nil {
		return 0, err
	}
	_, fixed, err := repairOrder(ctx, s.log, "links", userID, links, s.repo.UpdateLinkPositions)
	if err != nil {
		return 0, err
	}
	if fixed {
		repaired++
	}

	blocks, err := s.repo.ListBlocks(ctx, userID, false)
	if err != nil {
		return repaired, err
	}
	_, fixed, err = repairOrder(ctx, s.log, "blocks", userID, blocks, s.repo.UpdateBlockPositions)
	if err != nil {
		return repaired, err
	}
	if fixed {
		repaired++
	}

	if repaired > 0 {
		invalidateOwner(ctx, s.repo, s.cache, s.log, userID)
	}
	return repaired, nil
}

// ReconcileAll walks every owner. A failing owner does not stop the run;
// the errors are joined.
func (s *ReconcileService) ReconcileAll(ctx context.Context) (int, error) {
	owners, err := s.repo.ListOwners(ctx)
	if err != nil {
		return 0, fmt.Errorf("list owners: %w", err)
	}

	var (
		total int
		errs  []error
	)
	for _, userID := range owners {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		n, err := s.ReconcileUser(ctx, userID)
		total += n
		if err != nil {
			errs = append(errs, fmt.Errorf("reconcile %s: %w", userID, err))
		}
	}

	s.log.Info("reconcile finished", zap.Int("owners", len(owners)), zap.Int("repaired", total), zap.Int("failed", len(errs)))
	return total, errors.Join(errs...)
}
