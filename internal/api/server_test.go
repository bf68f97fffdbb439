package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiVisibilityGO/internal/config"
	"aiVisibilityGO/internal/engine"
	"aiVisibilityGO/internal/fetch"
	"aiVisibilityGO/internal/models"
)

type fakeRepo struct {
	saved     []*models.VisibilityReport
	byID      map[string]*models.VisibilityReport
	saveErr   error
	lastLimit int
}

func (f *fakeRepo) SaveReport(ctx context.Context, report *models.VisibilityReport) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, report)
	return nil
}

func (f *fakeRepo) GetReport(ctx context.Context, id string) (*models.VisibilityReport, error) {
	return f.byID[id], nil
}

func (f *fakeRepo) GetRecentReports(ctx context.Context, limit int) ([]*models.VisibilityReport, error) {
	f.lastLimit = limit
	if limit > len(f.saved) {
		limit = len(f.saved)
	}
	return f.saved[:limit], nil
}

func (f *fakeRepo) GetReportsByAPIKey(ctx context.Context, apiKey string, limit int) ([]*models.VisibilityReport, error) {
	f.lastLimit = limit
	var out []*models.VisibilityReport
	for _, r := range f.saved {
		if r.APIKey == apiKey && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetStats(ctx context.Context) (*models.Stats, error) {
	return &models.Stats{TotalReports: len(f.saved)}, nil
}

func (f *fakeRepo) Close(ctx context.Context) error { return nil }

func testConfig(apiKeys []string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:         "0",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Auth:      config.AuthConfig{APIKeys: apiKeys},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 100, BucketSize: 100},
	}
}

func newTestServer(repo *fakeRepo, apiKeys []string) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := engine.New(logger, nil)
	fetcher := fetch.New(logger, 5*time.Second, "TestBot/1.0")
	return NewServer(testConfig(apiKeys), repo, eng, fetcher, logger)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(&fakeRepo{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAnalyzeInlineContent(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestServer(repo, nil)

	body, _ := json.Marshal(map[string]any{
		"url":   "https://example.com/guide",
		"title": "Guide",
		"text": "A widget is a small reusable component that renders one piece of interface cleanly. " +
			"According to research, widget adoption grew 30% last year.",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var report models.VisibilityReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "https://example.com/guide", report.URL)
	assert.Len(t, report.Platforms, 5)
	assert.GreaterOrEqual(t, report.CombinedScore, 0)
	assert.LessOrEqual(t, report.CombinedScore, 100)

	require.Len(t, repo.saved, 1, "report must be persisted")
}

func TestAnalyzeRejectsMissingURL(t *testing.T) {
	s := newTestServer(&fakeRepo{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader([]byte(`{"text":"no url"}`)))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeRequiresAPIKeyWhenConfigured(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestServer(repo, []string{"secret-key"})

	body := []byte(`{"url":"https://example.com","title":"t","text":"Some content to score here."}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "secret-key")
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "secret-key", repo.saved[0].APIKey, "report carries the caller's key")
}

func TestGetReportNotFound(t *testing.T) {
	s := newTestServer(&fakeRepo{byID: map[string]*models.VisibilityReport{}}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports/deadbeefdeadbeefdeadbeef", nil)
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecentReports(t *testing.T) {
	repo := &fakeRepo{saved: []*models.VisibilityReport{
		{URL: "https://a.com"},
		{URL: "https://b.com"},
	}}
	s := newTestServer(repo, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports?limit=1", nil)
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Count   int                        `json:"count"`
		Reports []*models.VisibilityReport `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestRecentReportsLimitBounds(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestServer(repo, nil)

	tests := []struct {
		query string
		want  int
	}{
		{"", 10},
		{"?limit=0", 10},
		{"?limit=-5", 10},
		{"?limit=500", 100},
		{"?limit=abc", 10},
		{"?limit=25", 25},
	}
	for _, tt := range tests {
		t.Run("limit"+tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/reports"+tt.query, nil)
			s.router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, repo.lastLimit,
				"repository must never see an unbounded limit")
		})
	}
}
