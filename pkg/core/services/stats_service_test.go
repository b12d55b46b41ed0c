package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
)

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	p := seedProfile(t, repo, "u1", "jane")
	shop := seedLink(t, repo, "u1", "shop", 0, true)

	now := time.Now().UTC()
	events := []domain.Event{
		{ID: "v1", Name: domain.EventProfileView, Attributes: map[string]any{"profile_id": p.ID}, OccurredAt: now},
		{ID: "v2", Name: domain.EventProfileView, Attributes: map[string]any{"profile_id": p.ID}, OccurredAt: now},
		{ID: "c1", Name: domain.EventLinkClick, Attributes: map[string]any{"profile_id": p.ID, "link_id": shop.ID}, OccurredAt: now},
	}
	for _, e := range events {
		require.NoError(t, repo.RecordEvent(ctx, e))
	}

	stats, err := NewStatsService(repo).Dashboard(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalViews)
	assert.Equal(t, int64(1), stats.TotalClicks)
	assert.InDelta(t, 50.0, stats.ClickThroughRate, 0.001)
	require.Len(t, stats.TopLinks, 1)
	assert.Equal(t, shop.ID, stats.TopLinks[0].LinkID)

	_, err = NewStatsService(repo).Dashboard(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
