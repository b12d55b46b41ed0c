// Package storage keeps uploaded media on local disk and serves it back.
package storage

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

var errBadPath = errors.New("invalid destination path")

type LocalStorage struct {
	root    string
	baseURL string
	maxDim  int
	log     *zap.Logger
}

var _ ports.Storage = (*LocalStorage)(nil)

// NewLocalStorage stores files under root. Images larger than maxDim on
// either side are scaled down; maxDim <= 0 keeps originals.
func NewLocalStorage(root, baseURL string, maxDim int, log *zap.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxDim:  maxDim,
		log:     log.With(zap.String("component", "storage")),
	}, nil
}

func (s *LocalStorage) Upload(ctx context.Context, data []byte, destPath string, opts ports.UploadOptions) (*ports.UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.UploadError{Path: destPath, Err: err}
	}

	rel, err := cleanPath(destPath)
	if err != nil {
		return nil, &domain.UploadError{Path: destPath, Err: err}
	}
	full := filepath.Join(s.root, filepath.FromSlash(rel))

	if !opts.Upsert {
		if _, err := os.Stat(full); err == nil {
			return nil, &domain.UploadError{Path: rel, Err: os.ErrExist}
		}
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, &domain.UploadError{Path: rel, Err: err}
	}

	if err := writeFileAtomic(full, s.process(rel, data)); err != nil {
		return nil, &domain.UploadError{Path: rel, Err: err}
	}

	return &ports.UploadResult{
		Path:      rel,
		PublicURL: s.baseURL + "/" + rel,
	}, nil
}

// process downsizes decodable images. Anything imaging cannot decode or
// re-encode is stored as received.
func (s *LocalStorage) process(rel string, data []byte) []byte {
	if s.maxDim <= 0 {
		return data
	}
	format, err := imaging.FormatFromFilename(rel)
	if err != nil {
		return data
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		s.log.Debug("storing undecodable upload as-is", zap.String("path", rel), zap.Error(err))
		return data
	}

	b := img.Bounds()
	if b.Dx() <= s.maxDim && b.Dy() <= s.maxDim {
		return data
	}

	resized := imaging.Fit(img, s.maxDim, s.maxDim, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		s.log.Warn("re-encode failed, storing original", zap.String("path", rel), zap.Error(err))
		return data
	}
	return buf.Bytes()
}

// Handler serves stored files. Mount it with http.StripPrefix.
func (s *LocalStorage) Handler() http.Handler {
	return http.FileServer(http.Dir(s.root))
}

func cleanPath(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", errBadPath
		}
	}
	rel := strings.TrimPrefix(path.Clean("/"+p), "/")
	if rel == "" || rel == "." {
		return "", errBadPath
	}
	return rel, nil
}

func writeFileAtomic(name string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), name)
}
