package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/metrics"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

type MediaService struct {
	storage  ports.Storage
	maxBytes int64
	now      func() time.Time
	token    func() string
	log      *zap.Logger
}

var _ ports.MediaService = (*MediaService)(nil)

// NewMediaService uploads through storage. Files above maxBytes are rejected; maxBytes <= 0 disables the limit.
func NewMediaService(storage ports.Storage, maxBytes int64, log *zap.Logger) *MediaService {
	return &MediaService{
		storage:  storage,
		maxBytes: maxBytes,
		now:      time.Now,
		token:    func() string { return uuid.NewString()[:8] },
		log:      log.With(zap.String("component", "media")),
	}
}

// Upload stores data under the folder for kind and returns its public URL.
func (s *MediaService) Upload(ctx context.Context, userID string, kind ports.MediaKind, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", &domain.ValidationError{Field: "file", Reason: "is empty"}
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", &domain.ValidationError{Field: "file", Reason: fmt.Sprintf("must be at most %d bytes", s.maxBytes)}
	}

	dest, err := s.destination(userID, kind, sanitizeFilename(filename))
	if err != nil {
		return "", err
	}

	res, err := s.storage.Upload(ctx, data, dest, ports.UploadOptions{Upsert: true})
	if err != nil {
		metrics.Uploads.WithLabelValues(string(kind), "failed").Inc()
		s.log.Error("upload failed", zap.String("path", dest), zap.Error(err))
		var upErr *domain.UploadError
		if errors.As(err, &upErr) {
			return "", err
		}
		return "", &domain.UploadError{Path: dest, Err: err}
	}

	metrics.Uploads.WithLabelValues(string(kind), "ok").Inc()
	return res.PublicURL, nil
}

// destination is unique per upload except for avatars, which a user replaces.
func (s *MediaService) destination(userID string, kind ports.MediaKind, name string) (string, error) {
	ts := s.now().UnixMilli()
	switch kind {
	case ports.MediaAvatar:
		return fmt.Sprintf("avatars/%s/%d_%s", userID, ts, name), nil
	case ports.MediaIcon:
		return fmt.Sprintf("icons/%s/%d_%s_%s", userID, ts, s.token(), name), nil
	case ports.MediaContent:
		return fmt.Sprintf("content/%s/%d-%s-%s", userID, ts, s.token(), name), nil
	default:
		return "", &domain.ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown media kind %q", kind)}
	}
}

// sanitizeFilename keeps the base name and replaces anything outside a safe set.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.TrimLeft(b.String(), ".")
	if out == "" {
		return "upload"
	}
	return out
}
