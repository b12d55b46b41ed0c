package handler

import (
	"context"
	"net/http"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/app"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/config"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/logger"
)

var mux http.Handler

func init() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Environment: cfg.AppEnv,
		LogLevel:    cfg.LogLevel,
		ServiceName: "linkpage",
	})
	if err != nil {
		panic(err)
	}

	// Note: On Vercel, uploads and a local db.sqlite are ephemeral; point
	// DATABASE_URL at Turso and REDIS_URL at a shared cache.
	application, err := app.New(context.Background(), cfg, log)
	if err != nil {
		panic(err)
	}
	mux = application.Handler
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
