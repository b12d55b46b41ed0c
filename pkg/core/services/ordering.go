package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/ordering"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/metrics"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

type positionWriter func(ctx context.Context, userID string, positions map[int64]int) error

// repairOrder reindexes and persists a collection whose positions collide.
// Collisions come from writes that predate the batched reindex, or from two
// owners' sessions appending at the same time.
func repairOrder[T ordering.Item[T]](ctx context.Context, log *zap.Logger, kind, userID string, items []T, write positionWriter) (ordering.Collection[T], bool, error) {
	c := ordering.New(items)
	if c.Consistent() {
		return c, false, nil
	}

	fixed := c.Reindex()
	if err := write(ctx, userID, fixed.Positions()); err != nil {
		return c, false, fmt.Errorf("repair %s order for %s: %w", kind, userID, err)
	}

	metrics.PositionRepairs.WithLabelValues(kind).Inc()
	log.Warn("repaired duplicate positions",
		zap.String("collection", kind),
		zap.String("user_id", userID),
		zap.Int("items", fixed.Len()),
	)
	return fixed, true, nil
}

// invalidateOwner drops the cached public page of userID, if any.
func invalidateOwner(ctx context.Context, profiles ports.ProfileRepository, cache ports.PageCache, log *zap.Logger, userID string) {
	p, err := profiles.GetProfileByUserID(ctx, userID)
	if err != nil {
		log.Warn("cache invalidation lookup failed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	if p != nil {
		cache.Invalidate(ctx, p.Username)
	}
}
