package handler

import (
	"net/http"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/config"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/metrics"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

// Services is everything the router dispatches to.
type Services struct {
	Pages    ports.PageService
	Profiles ports.ProfileService
	Links    ports.LinkService
	Blocks   ports.BlockService
	Media    ports.MediaService
	Stats    ports.StatsService
}

// NewRouter creates and configures the main application router. media serves
// uploaded files under /media/ and may be nil when files live elsewhere.
func NewRouter(cfg *config.Config, svc Services, media http.Handler, log *zap.Logger) http.Handler {
	pages := NewPageHandler(svc.Pages, log)
	links := NewLinkHandler(svc.Links, log)
	blocks := NewBlockHandler(svc.Blocks, log)
	profile := NewProfileHandler(svc.Profiles, svc.Media, svc.Stats, cfg.UploadMaxBytes, log)

	mw := NewMiddleware(cfg, log)
	authHandler := NewAuthHandler(cfg, log)

	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	mux.Handle("GET /metrics", metrics.Handler())
	if media != nil {
		mux.Handle("GET /media/", http.StripPrefix("/media/", media))
	}
	mux.HandleFunc("GET /auth/google/login", authHandler.Login)
	mux.HandleFunc("GET /auth/google/callback", authHandler.Callback)
	mux.HandleFunc("GET /auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /go/{id}", pages.Click)
	mux.HandleFunc("GET /{handle}", pages.Show)

	// Protected Routes
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("GET /api/v1/profile", profile.Get)
	protectedMux.HandleFunc("PUT /api/v1/profile", profile.Update)
	protectedMux.HandleFunc("POST /api/v1/profile/avatar", profile.UploadAvatar)
	protectedMux.HandleFunc("POST /api/v1/uploads/{kind}", profile.Upload)
	protectedMux.HandleFunc("GET /api/v1/stats", profile.Stats)
	protectedMux.HandleFunc("GET /api/v1/catalog", profile.Catalog)

	protectedMux.HandleFunc("GET /api/v1/links", links.List)
	protectedMux.HandleFunc("POST /api/v1/links", links.Create)
	protectedMux.HandleFunc("POST /api/v1/links/move", links.Move)
	protectedMux.HandleFunc("PUT /api/v1/links/{id}", links.Update)
	protectedMux.HandleFunc("PATCH /api/v1/links/{id}/active", links.SetActive)
	protectedMux.HandleFunc("DELETE /api/v1/links/{id}", links.Delete)

	protectedMux.HandleFunc("GET /api/v1/blocks", blocks.List)
	protectedMux.HandleFunc("POST /api/v1/blocks", blocks.Create)
	protectedMux.HandleFunc("POST /api/v1/blocks/move", blocks.Move)
	protectedMux.HandleFunc("PUT /api/v1/blocks/{id}", blocks.Update)
	protectedMux.HandleFunc("PATCH /api/v1/blocks/{id}/active", blocks.SetActive)
	protectedMux.HandleFunc("DELETE /api/v1/blocks/{id}", blocks.Delete)

	mux.Handle("/api/v1/", mw.AuthMiddleware(protectedMux))

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
	})

	return mw.RequestLogger(mw.Recoverer(c.Handler(mux)))
}
