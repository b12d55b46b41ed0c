package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/adapters/repository/sqlite"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

var dbSeq atomic.Int64

// flakyRepo wraps the real store so individual calls can be made to fail.
type flakyRepo struct {
	*sqlite.SQLiteRepository
	linksErr     error
	blocksErr    error
	positionsErr error
}

func (r *flakyRepo) ListLinks(ctx context.Context, userID string, activeOnly bool) ([]domain.Link, error) {
	if r.linksErr != nil {
		return nil, r.linksErr
	}
	return r.SQLiteRepository.ListLinks(ctx, userID, activeOnly)
}

func (r *flakyRepo) ListBlocks(ctx context.Context, userID string, activeOnly bool) ([]domain.ContentBlock, error) {
	if r.blocksErr != nil {
		return nil, r.blocksErr
	}
	return r.SQLiteRepository.ListBlocks(ctx, userID, activeOnly)
}

func (r *flakyRepo) UpdateLinkPositions(ctx context.Context, userID string, positions map[int64]int) error {
	if r.positionsErr != nil {
		return r.positionsErr
	}
	return r.SQLiteRepository.UpdateLinkPositions(ctx, userID, positions)
}

func newRepo(t *testing.T) *flakyRepo {
	t.Helper()
	dsn := fmt.Sprintf("file:svctest%d?mode=memory&cache=shared", dbSeq.Add(1))
	repo, err := sqlite.NewSQLiteRepository(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return &flakyRepo{SQLiteRepository: repo}
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []domain.Event
}

func (e *recordingEmitter) Log(_ context.Context, name string, attrs map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, domain.Event{Name: name, Attributes: attrs, OccurredAt: time.Now()})
}

func (e *recordingEmitter) named(name string) []domain.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []domain.Event
	for _, ev := range e.events {
		if ev.Name == name {
			out = append(out, ev)
		}
	}
	return out
}

func seedProfile(t *testing.T, repo ports.ProfileRepository, userID, username string) *domain.Profile {
	t.Helper()
	p := domain.NewDefaultProfile(userID, username, "", time.Now())
	require.NoError(t, repo.CreateProfile(context.Background(), p))
	return p
}

func seedLink(t *testing.T, repo ports.LinkRepository, userID, title string, position int, active bool) domain.Link {
	t.Helper()
	now := time.Now()
	l := domain.Link{
		UserID:    userID,
		Title:     title,
		URL:       "https://example.com/" + title,
		Icon:      domain.IconDefault,
		IconStyle: domain.IconStyleFilled,
		Active:    active,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.CreateLink(context.Background(), &l))
	return l
}

func linkTitles(links []domain.Link) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Title)
	}
	return out
}

func linkPositions(links []domain.Link) []int {
	out := make([]int, 0, len(links))
	for _, l := range links {
		out = append(out, l.Position)
	}
	return out
}

func ptr[T any](v T) *T { return &v }
