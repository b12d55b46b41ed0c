package services

import (
	"context"
	"time"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

const (
	statsWindow   = 7 * 24 * time.Hour
	statsTopLinks = 5
)

type StatsService struct {
	repo ports.Repository
	now  func() time.Time
}

var _ ports.StatsService = (*StatsService)(nil)

func NewStatsService(repo ports.Repository) *StatsService {
	return &StatsService{repo: repo, now: time.Now}
}

// Dashboard aggregates the recorded events of the user's profile.
func (s *StatsService) Dashboard(ctx context.Context, userID string) (*domain.DashboardStats, error) {
	p, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}

	since := s.now().UTC().Add(-statsWindow).Truncate(24 * time.Hour)
	return s.repo.GetDashboardStats(ctx, p.ID, userID, since, statsTopLinks)
}
