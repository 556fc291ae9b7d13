package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnishkina/trustscore/internal/cache"
	apperrors "github.com/dnishkina/trustscore/internal/errors"
	"github.com/dnishkina/trustscore/internal/monitoring"
	"github.com/dnishkina/trustscore/internal/output"
)

type fakeScorer struct {
	report output.Report
	err    error
	calls  int
}

func (f *fakeScorer) ScoreURL(_ context.Context, _ string) (output.Report, error) {
	f.calls++
	return f.report, f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHealthEndpoint(t *testing.T) {
	srv := New(&fakeScorer{}, nil, nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestScoreEndpoint(t *testing.T) {
	license := 1.0
	scorer := &fakeScorer{report: output.Report{
		URL:      "https://github.com/octocat/Hello-World",
		NetScore: 0.755554321,
		License:  &license,
	}}
	srv := New(scorer, nil, nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/score",
		strings.NewReader(`{"url":"https://github.com/octocat/Hello-World"}`))
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var report output.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "https://github.com/octocat/Hello-World", report.URL)
	assert.InDelta(t, 0.75555, report.NetScore, 1e-9, "serve mode rounds like the CLI sink")
}

func TestScoreEndpointMissingURL(t *testing.T) {
	srv := New(&fakeScorer{}, nil, nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(`{}`))
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScoreEndpointInvalidURL(t *testing.T) {
	scorer := &fakeScorer{err: apperrors.NewValidationError("Invalid URL: not-a-url")}
	srv := New(scorer, nil, nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(`{"url":"not-a-url"}`))
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid URL")
}

func TestScoreEndpointUsesCache(t *testing.T) {
	scorer := &fakeScorer{report: output.Report{URL: "https://github.com/o/r"}}
	metrics := monitoring.NewMetrics()
	srv := New(scorer, cache.New(time.Minute), metrics, nil)
	router := srv.Router()

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(`{"url":"https://github.com/o/r"}`))
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 1, scorer.calls, "second request is served from cache")
	assert.Equal(t, int64(1), metrics.GetStats()["cache_hits"])
}
