package analytics

import (
	"context"
	"errors"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

// RepositorySink stores events in the application database, where the
// dashboard statistics are computed from.
type RepositorySink struct {
	repo ports.EventRepository
}

func NewRepositorySink(repo ports.EventRepository) *RepositorySink {
	return &RepositorySink{repo: repo}
}

func (s *RepositorySink) Deliver(ctx context.Context, e domain.Event) error {
	return s.repo.RecordEvent(ctx, e)
}

func (s *RepositorySink) Close() error { return nil }

// MultiSink fans an event out to several sinks. A failure in one does not
// stop delivery to the others.
type MultiSink []ports.AnalyticsSink

func (m MultiSink) Deliver(ctx context.Context, e domain.Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Deliver(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiSink) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
