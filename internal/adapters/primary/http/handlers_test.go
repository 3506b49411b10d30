package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pixwingai/pixwing-site/internal/core/domain"
	apperrors "github.com/pixwingai/pixwing-site/internal/core/errors"
	"github.com/pixwingai/pixwing-site/internal/core/mocks"
	"github.com/pixwingai/pixwing-site/internal/core/services"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSeries() domain.ActivitySeries {
	return domain.ActivitySeries{
		{Date: "2024-03-01", NumEvents: 2},
		{Date: "2024-03-02", NumEvents: 0},
		{Date: "2024-03-03", NumEvents: 5},
		{Date: "2024-03-04", NumEvents: 1},
	}
}

type activityDeps struct {
	contributions *mocks.MockContributionService
	source        *mocks.MockActivitySource
	renderer      *mocks.MockChartRenderer
}

func newActivityRouter(t *testing.T) (chi.Router, activityDeps) {
	t.Helper()
	deps := activityDeps{
		contributions: mocks.NewMockContributionService(),
		source:        mocks.NewMockActivitySource(),
		renderer:      mocks.NewMockChartRenderer(),
	}
	handler := NewActivityHandler(
		deps.contributions,
		deps.source,
		services.DefaultChartFactory{},
		deps.renderer,
		domain.Breakpoint,
		NewErrorHandler(discardLogger()),
		discardLogger(),
	)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) { handler.RegisterRoutes(r) })
	return r, deps
}

func serve(r stdhttp.Handler, req *stdhttp.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestActivityHandler_GitHubStatus(t *testing.T) {
	t.Run("returns the series", func(t *testing.T) {
		r, deps := newActivityRouter(t)
		deps.contributions.On("GetRecentActivity", mock.Anything).Return(testSeries(), nil)

		rec := serve(r, httptest.NewRequest(stdhttp.MethodGet, "/api/getgithubstatus", nil))

		require.Equal(t, stdhttp.StatusOK, rec.Code)
		var got domain.ActivitySeries
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, testSeries(), got)
	})

	t.Run("upstream failure maps to bad gateway", func(t *testing.T) {
		r, deps := newActivityRouter(t)
		deps.contributions.On("GetRecentActivity", mock.Anything).
			Return(nil, fmt.Errorf("%w: boom", apperrors.ErrContributionsUnavailable))

		rec := serve(r, httptest.NewRequest(stdhttp.MethodGet, "/api/getgithubstatus", nil))

		assert.Equal(t, stdhttp.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "CONTRIBUTIONS_UNAVAILABLE")
	})
}

func TestActivityHandler_Widget(t *testing.T) {
	t.Run("wide viewport renders the chart", func(t *testing.T) {
		r, deps := newActivityRouter(t)
		deps.source.On("FetchActivity", mock.Anything).Return(testSeries(), nil)

		rec := serve(r, httptest.NewRequest(stdhttp.MethodGet, "/api/activity/widget?width=1200&boxWidth=600&boxHeight=300", nil))

		require.Equal(t, stdhttp.StatusOK, rec.Code)
		assert.Equal(t, viewportWidthHint, rec.Header().Get("Vary"))

		var got services.WidgetRender
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, domain.BranchChart, got.Branch)
		assert.Equal(t, services.StateRendered, got.State)
		assert.False(t, got.Loading)
		require.NotNil(t, got.Chart)
		assert.Nil(t, got.Summary)

		want := services.BuildChartSpec(testSeries(), 600, 300)
		if diff := cmp.Diff(want, *got.Chart); diff != "" {
			t.Errorf("chart spec mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("client hint below breakpoint renders the summary", func(t *testing.T) {
		r, deps := newActivityRouter(t)
		deps.source.On("FetchActivity", mock.Anything).Return(testSeries(), nil)

		req := httptest.NewRequest(stdhttp.MethodGet, "/api/activity/widget", nil)
		req.Header.Set(viewportWidthHint, "991")
		rec := serve(r, req)

		require.Equal(t, stdhttp.StatusOK, rec.Code)
		var got services.WidgetRender
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, domain.BranchSummary, got.Branch)
		assert.Nil(t, got.Chart)
		require.NotNil(t, got.Summary)
		assert.Equal(t, domain.TextSummary{WindowDays: 4, TotalEvents: 8, LongestStreak: 2}, *got.Summary)
	})

	t.Run("fetch failure renders nothing but succeeds", func(t *testing.T) {
		r, deps := newActivityRouter(t)
		deps.source.On("FetchActivity", mock.Anything).Return(nil, apperrors.ErrActivityUnavailable)

		rec := serve(r, httptest.NewRequest(stdhttp.MethodGet, "/api/activity/widget?width=1200", nil))

		require.Equal(t, stdhttp.StatusOK, rec.Code)
		var got services.WidgetRender
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, domain.BranchNone, got.Branch)
		assert.Equal(t, services.StateError, got.State)
		assert.False(t, got.Loading)
	})

	t.Run("invalid width is rejected", func(t *testing.T) {
		r, _ := newActivityRouter(t)

		rec := serve(r, httptest.NewRequest(stdhttp.MethodGet, "/api/activity/widget?width=wide", nil))

		assert.Equal(t, stdhttp.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	})
}

func TestActivityHandler_ChartPNG(t *testing.T) {
	t.Run("renders the image", func(t *testing.T) {
		r, deps := newActivityRouter(t)
		deps.source.On("FetchActivity", mock.Anything).Return(testSeries(), nil)
		deps.renderer.On("RenderPNG", mock.Anything, services.BuildChartSpec(testSeries(), 640, 320)).
			Run(func(args mock.Arguments) {
				_, _ = args.Get(0).(io.Writer).Write([]byte("png"))
			}).
			Return(nil)

		rec := serve(r, httptest.NewRequest(stdhttp.MethodGet, "/api/activity/chart.png?width=640&height=320", nil))

		require.Equal(t, stdhttp.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, "png", rec.Body.String())
		deps.renderer.AssertExpectations(t)
	})

	t.Run("nothing to draw", func(t *testing.T) {
		r, deps := newActivityRouter(t)
		deps.source.On("FetchActivity", mock.Anything).Return(domain.ActivitySeries{}, nil)
		deps.renderer.On("RenderPNG", mock.Anything, mock.Anything).Return(apperrors.ErrNotEnoughPoints)

		rec := serve(r, httptest.NewRequest(stdhttp.MethodGet, "/api/activity/chart.png", nil))

		assert.Equal(t, stdhttp.StatusNoContent, rec.Code)
	})

	t.Run("malformed feed", func(t *testing.T) {
		r, deps := newActivityRouter(t)
		deps.source.On("FetchActivity", mock.Anything).
			Return(nil, fmt.Errorf("%w: %w", apperrors.ErrActivityUnavailable, apperrors.ErrMalformedSeries))

		rec := serve(r, httptest.NewRequest(stdhttp.MethodGet, "/api/activity/chart.png", nil))

		assert.Equal(t, stdhttp.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "MALFORMED_SERIES")
	})

	t.Run("oversized dimension", func(t *testing.T) {
		r, _ := newActivityRouter(t)

		rec := serve(r, httptest.NewRequest(stdhttp.MethodGet, "/api/activity/chart.png?height=9000", nil))

		assert.Equal(t, stdhttp.StatusUnprocessableEntity, rec.Code)
	})
}

func TestPageHandler_Index(t *testing.T) {
	page := &domain.LandingPage{
		Home: domain.HomePageProps{
			Stacks: []domain.Stack{{ID: "1", Name: "Go", Image: domain.Image{URL: "https://img/go.png", FileName: "go.png"}}},
		},
		PixWing: domain.PixWingProps{
			Visions:  []domain.Vision{{ID: "v1", Description: "See further\n\nFly higher"}},
			Cultures: []domain.Culture{{ID: "c1", Title: "Craft", Description: "We ship <b>care</b>"}},
		},
	}

	t.Run("renders content", func(t *testing.T) {
		content := mocks.NewMockContentService()
		content.On("GetLandingPage", mock.Anything).Return(page, nil)

		handler := NewPageHandler(content, PageConfig{ProfileURL: "https://github.com/theninza", WindowDays: 10}, NewErrorHandler(discardLogger()), discardLogger())
		r := chi.NewRouter()
		handler.RegisterRoutes(r)

		rec := serve(r, httptest.NewRequest(stdhttp.MethodGet, "/", nil))

		require.Equal(t, stdhttp.StatusOK, rec.Code)
		assert.Equal(t, viewportWidthHint, rec.Header().Get("Accept-CH"))
		assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))

		body := rec.Body.String()
		assert.Contains(t, body, "<title>PixWingAi</title>")
		assert.Contains(t, body, "<p>See further</p>")
		assert.Contains(t, body, "<p>Fly higher</p>")
		assert.Contains(t, body, "We ship &lt;b&gt;care&lt;/b&gt;")
		assert.Contains(t, body, "Opening Soon")
		assert.Contains(t, body, "In Last 10 Days:")
		assert.Contains(t, body, `href="https://github.com/theninza"`)
		assert.Contains(t, body, "drawChart(r.chartId, r.chart)")
		assert.Contains(t, body, "completed = false")
	})

	t.Run("cms failure", func(t *testing.T) {
		content := mocks.NewMockContentService()
		content.On("GetLandingPage", mock.Anything).
			Return(nil, fmt.Errorf("%w: primary: %w", apperrors.ErrCMSUnavailable, errors.New("timeout")))

		handler := NewPageHandler(content, PageConfig{}, NewErrorHandler(discardLogger()), discardLogger())
		r := chi.NewRouter()
		handler.RegisterRoutes(r)

		rec := serve(r, httptest.NewRequest(stdhttp.MethodGet, "/", nil))

		assert.Equal(t, stdhttp.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "CMS_UNAVAILABLE")
	})
}

type stubChecker struct{ err error }

func (s stubChecker) Ping(context.Context) error { return s.err }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		checks     map[string]HealthChecker
		wantStatus int
		wantBody   string
	}{
		{"liveness ignores dependencies", "/health/live", map[string]HealthChecker{"cms": stubChecker{errors.New("down")}}, stdhttp.StatusOK, "healthy"},
		{"ready when every cms answers", "/health/ready", map[string]HealthChecker{"cms": stubChecker{}, "cms_pixwing": stubChecker{}}, stdhttp.StatusOK, "healthy"},
		{"not ready when one cms fails", "/health/ready", map[string]HealthChecker{"cms": stubChecker{}, "cms_pixwing": stubChecker{errors.New("down")}}, stdhttp.StatusServiceUnavailable, "unhealthy"},
		{"detailed health degrades", "/health", map[string]HealthChecker{"cms": nil}, stdhttp.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			NewHealthHandler(tt.checks, "test").RegisterRoutes(r)

			rec := serve(r, httptest.NewRequest(stdhttp.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Status)
		})
	}
}

func TestErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"cms", fmt.Errorf("%w: pixwing: x", apperrors.ErrCMSUnavailable), stdhttp.StatusBadGateway, "CMS_UNAVAILABLE"},
		{"malformed wins over unavailable", fmt.Errorf("%w: %w", apperrors.ErrActivityUnavailable, apperrors.ErrMalformedSeries), stdhttp.StatusBadGateway, "MALFORMED_SERIES"},
		{"activity", apperrors.ErrActivityUnavailable, stdhttp.StatusBadGateway, "ACTIVITY_UNAVAILABLE"},
		{"rate limited", apperrors.NewRateLimitError(), stdhttp.StatusTooManyRequests, "RATE_LIMITED"},
		{"contributions", fmt.Errorf("%w: theninza", apperrors.ErrContributionsUnavailable), stdhttp.StatusBadGateway, "CONTRIBUTIONS_UNAVAILABLE"},
		{"upstream without code", apperrors.NewUpstreamError(errors.New("dial"), "", "down"), stdhttp.StatusBadGateway, "UPSTREAM_UNAVAILABLE"},
		{"bad request", fmt.Errorf("%w: width missing", apperrors.ErrBadRequest), stdhttp.StatusBadRequest, "BAD_REQUEST"},
		{"rate limited sentinel", apperrors.ErrRateLimited, stdhttp.StatusTooManyRequests, "RATE_LIMITED"},
		{"not found", apperrors.ErrNotFound, stdhttp.StatusNotFound, "NOT_FOUND"},
		{"unknown", errors.New("boom"), stdhttp.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewErrorHandler(discardLogger()).Handle(rec, httptest.NewRequest(stdhttp.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestErrorHandler_Messages(t *testing.T) {
	handle := func(err error) ErrorResponse {
		rec := httptest.NewRecorder()
		NewErrorHandler(discardLogger()).Handle(rec, httptest.NewRequest(stdhttp.MethodGet, "/", nil), err)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body
	}

	assert.Equal(t, "bad request: width missing", handle(fmt.Errorf("%w: width missing", apperrors.ErrBadRequest)).Error)
	assert.Equal(t, "Page content is temporarily unavailable", handle(apperrors.ErrCMSUnavailable).Error)
	assert.Equal(t, "An unexpected error occurred", handle(errors.New("secret detail")).Error)
}

func TestStaticRoutes(t *testing.T) {
	r := chi.NewRouter()
	RegisterStaticRoutes(r)

	rec := serve(r, httptest.NewRequest(stdhttp.MethodGet, "/static/site.css", nil))
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".glassCard")

	rec = serve(r, httptest.NewRequest(stdhttp.MethodGet, "/static/missing.css", nil))
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
}
