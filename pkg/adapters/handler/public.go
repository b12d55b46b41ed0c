package handler

import (
	"errors"
	"net/http"
	"path"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

// PageHandler serves the public profile page and link activations.
type PageHandler struct {
	service ports.PageService
	log     *zap.Logger
}

func NewPageHandler(service ports.PageService, log *zap.Logger) *PageHandler {
	return &PageHandler{service: service, log: log}
}

// assetExts are extensions that bare handles never resolve with.
var assetExts = map[string]bool{
	".ico": true, ".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true, ".webp": true,
	".css": true, ".js": true, ".map": true, ".json": true, ".txt": true, ".xml": true,
	".html": true, ".webmanifest": true,
}

// Show answers /<username> and /@<username> with the page view model.
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	handle := r.PathValue("handle")
	// /favicon.ico and friends; /@name always reaches the page
	if !strings.HasPrefix(handle, "@") && assetExts[strings.ToLower(path.Ext(handle))] {
		http.NotFound(w, r)
		return
	}

	page, err := h.service.Compose(r.Context(), handle)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=30")
	writeJSON(w, http.StatusOK, page)
}

// Click records the activation and redirects to the link's destination.
func (h *PageHandler) Click(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	dest, err := h.service.ResolveClick(r.Context(), id)
	if errors.Is(err, domain.ErrLinkNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, dest, http.StatusFound)
}
