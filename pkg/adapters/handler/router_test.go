package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/adapters/cache"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/adapters/repository/sqlite"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/config"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/domain"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/render"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/core/services"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/json"
	"github.com/blink-new/personalized-link-page-wordpress-platform-zz4v59r9/pkg/ports"
)

var dbSeq atomic.Int64

type countingEmitter struct {
	mu    sync.Mutex
	names []string
}

func (e *countingEmitter) Log(_ context.Context, name string, _ map[string]any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.names = append(e.names, name)
}

type noStorage struct{}

func (noStorage) Upload(_ context.Context, _ []byte, dest string, _ ports.UploadOptions) (*ports.UploadResult, error) {
	return &ports.UploadResult{Path: dest, PublicURL: "http://media/" + dest}, nil
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
	emitter *countingEmitter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repo, err := sqlite.NewSQLiteRepository(fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", dbSeq.Add(1)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	cfg := &config.Config{JWTSecret: "test-secret", UploadMaxBytes: 1 << 20}
	log := zap.NewNop()
	pages := cache.Noop{}
	emitter := &countingEmitter{}
	media := services.NewMediaService(noStorage{}, cfg.UploadMaxBytes, log)

	h := NewRouter(cfg, Services{
		Pages:    services.NewPageService(repo, pages, emitter, log),
		Profiles: services.NewProfileService(repo, media, pages, log),
		Links:    services.NewLinkService(repo, pages, log),
		Blocks:   services.NewBlockService(repo, pages, log),
		Media:    media,
		Stats:    services.NewStatsService(repo),
	}, nil, log)

	return &testServer{
		t:       t,
		handler: h,
		cookie:  &http.Cookie{Name: authCookie, Value: generateTestToken(t, cfg.JWTSecret, "google-1", time.Hour)},
		emitter: emitter,
	}
}

func (s *testServer) do(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.AddCookie(s.cookie)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestDashboardAndPublicPage(t *testing.T) {
	s := newTestServer(t)

	rr := s.do("GET", "/api/v1/profile", nil, true)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	profile := decode[domain.Profile](t, rr)
	assert.Equal(t, "test", profile.Username)

	var ids []int64
	for _, title := range []string{"shop", "blog", "hidden"} {
		rr = s.do("POST", "/api/v1/links", map[string]any{"title": title, "url": title + ".example.com"}, true)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		ids = append(ids, decode[domain.Link](t, rr).ID)
	}
	rr = s.do("PATCH", fmt.Sprintf("/api/v1/links/%d/active", ids[2]), map[string]any{"is_active": false}, true)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = s.do("POST", "/api/v1/links/move", MoveRequest{ID: ids[1], From: 1, To: 0}, true)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = s.do("GET", "/@test", nil, false)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	page := decode[render.Page](t, rr)
	require.Len(t, page.Links, 2)
	assert.Equal(t, "blog", page.Links[0].Title)
	assert.Equal(t, "shop", page.Links[1].Title)

	rr = s.do("GET", page.Links[0].Href, nil, false)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "https://blog.example.com", rr.Header().Get("Location"))

	assert.Equal(t, []string{domain.EventProfileView, domain.EventLinkClick}, s.emitter.names)
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do("GET", "/api/v1/profile", nil, true).Code)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		authed bool
		want   int
	}{
		{"unknown profile", "GET", "/nonexistent-user", nil, false, http.StatusNotFound},
		{"file-like handle", "GET", "/favicon.ico", nil, false, http.StatusNotFound},
		{"unknown click", "GET", "/go/999", nil, false, http.StatusNotFound},
		{"unauthenticated api", "GET", "/api/v1/links", nil, false, http.StatusUnauthorized},
		{"invalid link", "POST", "/api/v1/links", map[string]any{"title": ""}, true, http.StatusBadRequest},
		{"bad index", "POST", "/api/v1/links/move", MoveRequest{ID: 1, From: 0, To: 3}, true, http.StatusBadRequest},
		{"missing link", "DELETE", "/api/v1/links/42", nil, true, http.StatusNotFound},
		{"bad id", "PUT", "/api/v1/blocks/abc", map[string]any{"type": "text"}, true, http.StatusBadRequest},
		{"invalid block", "POST", "/api/v1/blocks", map[string]any{"type": "gallery", "content": "[]"}, true, http.StatusBadRequest},
		{"catalog", "GET", "/api/v1/catalog", nil, true, http.StatusOK},
		{"stats", "GET", "/api/v1/stats", nil, true, http.StatusOK},
		{"health", "GET", "/healthz", nil, false, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(tt.method, tt.path, tt.body, tt.authed)
			assert.Equal(t, tt.want, rr.Code, rr.Body.String())
		})
	}
}

func TestUsernameConflict(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do("GET", "/api/v1/profile", nil, true).Code)

	other := generateTestToken(t, "test-secret", "google-2", time.Hour)
	req := httptest.NewRequest("GET", "/api/v1/profile", nil)
	req.AddCookie(&http.Cookie{Name: authCookie, Value: other})
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	second := decode[domain.Profile](t, rr)
	assert.Equal(t, "test_2", second.Username)

	rr = s.do("PUT", "/api/v1/profile", map[string]any{"username": "test_2"}, true)
	assert.Equal(t, http.StatusConflict, rr.Code, rr.Body.String())
}

func TestDottedUsernamePage(t *testing.T) {
	s := newTestServer(t)
	s.cookie = &http.Cookie{Name: authCookie, Value: generateTestTokenFor(t, "test-secret", "google-9", "jane.doe@example.com", time.Hour)}

	rr := s.do("GET", "/api/v1/profile", nil, true)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Equal(t, "jane.doe", decode[domain.Profile](t, rr).Username)

	for _, path := range []string{"/jane.doe", "/@jane.doe", "/@Jane.Doe"} {
		rr = s.do("GET", path, nil, false)
		require.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, "jane.doe", decode[render.Page](t, rr).Header.Username, path)
	}

	assert.Equal(t, http.StatusNotFound, s.do("GET", "/robots.txt", nil, false).Code)
}

func TestUploadIcon(t *testing.T) {
	s := newTestServer(t)

	body := &bytes.Buffer{}
	boundary := "xyz"
	body.WriteString("--" + boundary + "\r\n")
	body.WriteString(`Content-Disposition: form-data; name="file"; filename="logo.png"` + "\r\n")
	body.WriteString("Content-Type: image/png\r\n\r\n")
	body.WriteString("not-really-a-png\r\n")
	body.WriteString("--" + boundary + "--\r\n")

	req := httptest.NewRequest("POST", "/api/v1/uploads/icon", body)
	req.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)
	req.AddCookie(s.cookie)
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	res := decode[map[string][]string](t, rr)
	require.Len(t, res["urls"], 1)
	assert.True(t, strings.HasPrefix(res["urls"][0], "http://media/icons/"))
	assert.True(t, strings.HasSuffix(res["urls"][0], "_logo.png"))
}
