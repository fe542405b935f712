package app_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ai-match-engine/internal/adapter/cache/memory"
	"github.com/fairyhunter13/ai-match-engine/internal/adapter/httpserver"
	"github.com/fairyhunter13/ai-match-engine/internal/app"
	"github.com/fairyhunter13/ai-match-engine/internal/config"
	"github.com/fairyhunter13/ai-match-engine/internal/usecase"
)

func TestParseOrigins(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{"*"}},
		{"wildcard", "*", []string{"*"}},
		{"single", "https://a.example.com", []string{"https://a.example.com"}},
		{"multiple with spaces", "https://a.example.com, https://b.example.com", []string{"https://a.example.com", "https://b.example.com"}},
		{"trailing comma", "https://a.example.com,", []string{"https://a.example.com"}},
		{"only commas", ",,,", []string{"*"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, app.ParseOrigins(tc.in))
		})
	}
}

func newRouter(t *testing.T, cfg config.Config) http.Handler {
	t.Helper()
	if cfg.RateLimitPerMin == 0 {
		cfg.RateLimitPerMin = 120
	}
	matcher := usecase.NewMatcherService(memory.New(time.Hour, 0), nil)
	srv := httpserver.NewServer(cfg, matcher, nil, nil, nil, nil)
	return app.BuildRouter(cfg, srv)
}

func TestBuildRouter_Health(t *testing.T) {
	t.Parallel()
	router := newRouter(t, config.Config{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildRouter_AdminRequiresCredentials(t *testing.T) {
	t.Parallel()
	router := newRouter(t, config.Config{AdminUsername: "admin", AdminPassword: "s3cret"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil)
	req.SetBasicAuth("admin", "s3cret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildRouter_AdminDisabledWithoutCredentials(t *testing.T) {
	t.Parallel()
	router := newRouter(t, config.Config{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBuildRouter_SecurityHeaders(t *testing.T) {
	t.Parallel()
	router := newRouter(t, config.Config{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}
