package http

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pixwingai/pixwing-site/internal/adapters/primary/validation"
	"github.com/pixwingai/pixwing-site/internal/core/domain"
	apperrors "github.com/pixwingai/pixwing-site/internal/core/errors"
	"github.com/pixwingai/pixwing-site/internal/core/ports"
	"github.com/pixwingai/pixwing-site/internal/core/services"
)

const (
	defaultChartWidth  = 1024
	defaultChartHeight = 400
)

// Client hint headers carrying the viewport width.
const (
	viewportWidthHint       = "Sec-CH-Viewport-Width"
	legacyViewportWidthHint = "Viewport-Width"
)

// ActivityHandler serves the github status feed and the activity widget.
type ActivityHandler struct {
	contributions ports.ContributionService
	source        ports.ActivitySource
	factory       ports.ChartFactory
	renderer      ports.ChartRenderer
	breakpoint    int
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(
	contributions ports.ContributionService,
	source ports.ActivitySource,
	factory ports.ChartFactory,
	renderer ports.ChartRenderer,
	breakpoint int,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *ActivityHandler {
	return &ActivityHandler{
		contributions: contributions,
		source:        source,
		factory:       factory,
		renderer:      renderer,
		breakpoint:    breakpoint,
		errorHandler:  errorHandler,
		logger:        logger,
	}
}

// RegisterRoutes registers the activity routes on an /api router. The
// middlewares wrap the /activity group only.
func (h *ActivityHandler) RegisterRoutes(r chi.Router, activityMiddlewares ...func(http.Handler) http.Handler) {
	r.Get("/getgithubstatus", h.HandleGitHubStatus)
	r.Route("/activity", func(r chi.Router) {
		r.Use(activityMiddlewares...)
		r.Get("/widget", h.HandleWidget)
		r.Get("/chart.png", h.HandleChartPNG)
	})
}

// HandleGitHubStatus returns the recent activity series.
func (h *ActivityHandler) HandleGitHubStatus(w http.ResponseWriter, r *http.Request) {
	series, err := h.contributions.GetRecentActivity(r.Context())
	if HandleError(w, r, err, h.errorHandler) {
		return
	}
	WriteJSON(w, http.StatusOK, series)
}

// HandleWidget runs one widget lifecycle for the request: load, render for
// the requested viewport, unmount.
func (h *ActivityHandler) HandleWidget(w http.ResponseWriter, r *http.Request) {
	vp, box, err := widgetParams(r)
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	widget := services.NewActivityWidget(h.source, h.factory, h.breakpoint, h.logger)
	defer widget.Unmount()

	// Load failures are logged by the widget and rendered as an empty state.
	_ = widget.Load(r.Context())

	WriteJSONWithHeaders(w, http.StatusOK, widget.Render(vp, box), map[string]string{
		"Vary": viewportWidthHint,
	})
}

// HandleChartPNG renders the activity chart as a static image.
func (h *ActivityHandler) HandleChartPNG(w http.ResponseWriter, r *http.Request) {
	v := validation.NewValidator()
	width := v.Dimension("width", r.URL.Query().Get("width"), defaultChartWidth)
	height := v.Dimension("height", r.URL.Query().Get("height"), defaultChartHeight)
	if HandleError(w, r, v.Err(), h.errorHandler) {
		return
	}

	series, err := h.source.FetchActivity(r.Context())
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	var buf bytes.Buffer
	err = h.renderer.RenderPNG(&buf, services.BuildChartSpec(series, width, height))
	if errors.Is(err, apperrors.ErrNotEnoughPoints) {
		WriteNoContent(w)
		return
	}
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// widgetParams reads the viewport and chart container size. The viewport
// width comes from the query, then the client hint headers; when neither is
// present it stays zero and the chart branch is used.
func widgetParams(r *http.Request) (domain.Viewport, domain.Box, error) {
	q := r.URL.Query()
	v := validation.NewValidator()

	widthRaw := q.Get("width")
	if widthRaw == "" {
		widthRaw = r.Header.Get(viewportWidthHint)
	}
	if widthRaw == "" {
		widthRaw = r.Header.Get(legacyViewportWidthHint)
	}

	vp := domain.Viewport{
		Width:  v.Dimension("width", widthRaw, 0),
		Height: v.Dimension("height", q.Get("height"), 0),
	}

	defaultBoxWidth := defaultChartWidth
	if vp.Width > 0 && vp.Width < defaultBoxWidth {
		defaultBoxWidth = vp.Width
	}
	box := domain.Box{
		Width:  v.Dimension("boxWidth", q.Get("boxWidth"), defaultBoxWidth),
		Height: v.Dimension("boxHeight", q.Get("boxHeight"), defaultChartHeight),
	}

	if err := v.Err(); err != nil {
		return domain.Viewport{}, domain.Box{}, err
	}
	return vp, box, nil
}
