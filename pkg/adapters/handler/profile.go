package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/theme"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

// multipart overhead allowed on top of the file size limit
const formOverhead = 64 << 10

type ProfileHandler struct {
	profiles ports.ProfileService
	media    ports.MediaService
	stats    ports.StatsService
	maxBytes int64
	log      *zap.Logger
}

func NewProfileHandler(profiles ports.ProfileService, media ports.MediaService, stats ports.StatsService, maxBytes int64, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, media: media, stats: stats, maxBytes: maxBytes, log: log}
}

// Get returns the caller's profile, creating it on the first dashboard visit.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	p, err := h.profiles.GetOrCreate(r.Context(), u)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req ports.ProfileInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	p, err := h.profiles.Update(r.Context(), uid, req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	files, err := h.readFiles(w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	p, err := h.profiles.UploadAvatar(r.Context(), uid, files[0].name, files[0].data)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Upload stores one or more files for a link icon or a content block and
// returns their URLs in the order received.
func (h *ProfileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	kind := ports.MediaKind(r.PathValue("kind"))
	if kind != ports.MediaIcon && kind != ports.MediaContent {
		writeMessage(w, http.StatusNotFound, "unknown upload kind")
		return
	}

	files, err := h.readFiles(w, r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := h.media.Upload(r.Context(), uid, kind, f.name, f.data)
		if err != nil {
			writeError(w, r, h.log, err)
			return
		}
		urls = append(urls, url)
	}
	writeJSON(w, http.StatusCreated, map[string]any{"urls": urls})
}

func (h *ProfileHandler) Stats(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	stats, err := h.stats.Dashboard(r.Context(), uid)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *ProfileHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, theme.GetCatalog())
}

type uploadedFile struct {
	name string
	data []byte
}

// readFiles accepts a single "file" part or repeated "files" parts.
func (h *ProfileHandler) readFiles(w http.ResponseWriter, r *http.Request) ([]uploadedFile, error) {
	limit := h.maxBytes
	if limit <= 0 {
		limit = 32 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit*10+formOverhead)
	if err := r.ParseMultipartForm(limit); err != nil {
		return nil, &domain.ValidationError{Field: "file", Reason: "expected a multipart upload within the size limit"}
	}

	headers := r.MultipartForm.File["files"]
	if fh := r.MultipartForm.File["file"]; len(fh) > 0 {
		headers = append(fh[:1:1], headers...)
	}
	if len(headers) == 0 {
		return nil, &domain.ValidationError{Field: "file", Reason: "is required"}
	}

	files := make([]uploadedFile, 0, len(headers))
	for _, fh := range headers {
		data, err := readPart(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, uploadedFile{name: fh.Filename, data: data})
	}
	return files, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
