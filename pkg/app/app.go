// Package app wires configuration into the repository, adapters, services
// and router shared by the server and the serverless entrypoint.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/adapters/cache"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/adapters/eventstream"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/adapters/handler"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/adapters/repository/sqlite"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/adapters/storage"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/analytics"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/config"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/services"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

type App struct {
	Handler    http.Handler
	Reconciler *services.ReconcileService

	// closed in reverse order
	closers []func() error
}

func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{}

	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	a.closers = append(a.closers, repo.Close)

	pages, err := newPageCache(ctx, cfg, log)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if c, ok := pages.(*cache.RedisCache); ok {
		a.closers = append(a.closers, c.Close)
	}

	files, err := storage.NewLocalStorage(cfg.UploadDir, cfg.MediaBaseURL, cfg.UploadMaxDimension, log)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("prepare upload dir: %w", err)
	}

	sinks := analytics.MultiSink{analytics.NewRepositorySink(repo)}
	if len(cfg.KafkaBrokers) > 0 {
		sinks = append(sinks, eventstream.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic))
		log.Info("publishing analytics to kafka", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}
	emitter := analytics.NewEmitter(sinks, log, analytics.Options{
		Workers:   cfg.AnalyticsWorkers,
		QueueSize: cfg.AnalyticsQueueSize,
	})
	// drains pending events before the repository closes
	a.closers = append(a.closers, emitter.Close)

	media := services.NewMediaService(files, cfg.UploadMaxBytes, log)
	a.Handler = handler.NewRouter(cfg, handler.Services{
		Pages:    services.NewPageService(repo, pages, emitter, log),
		Profiles: services.NewProfileService(repo, media, pages, log),
		Links:    services.NewLinkService(repo, pages, log),
		Blocks:   services.NewBlockService(repo, pages, log),
		Media:    media,
		Stats:    services.NewStatsService(repo),
	}, files.Handler(), log)
	a.Reconciler = services.NewReconcileService(repo, pages, log)

	return a, nil
}

func newPageCache(ctx context.Context, cfg *config.Config, log *zap.Logger) (ports.PageCache, error) {
	switch {
	case cfg.PageCacheTTL <= 0:
		return cache.Noop{}, nil
	case cfg.RedisURL != "":
		c, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.PageCacheTTL, log)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		return c, nil
	default:
		return cache.NewMemoryCache(cfg.PageCacheTTL), nil
	}
}

// Close releases everything New opened.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
