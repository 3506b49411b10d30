package http

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pixwingai/pixwing-site/internal/core/domain"
	"github.com/pixwingai/pixwing-site/internal/core/ports"
	"github.com/pixwingai/pixwing-site/internal/infrastructure/logging"
)

var (
	//go:embed templates/*.html
	templateFS embed.FS

	pageFuncs = template.FuncMap{
		"paragraphs": domain.Paragraphs,
	}

	pageTemplates = template.Must(
		template.New("pages").Funcs(pageFuncs).ParseFS(templateFS, "templates/*.html"),
	)
)

// PageConfig holds the values the landing page needs besides CMS content.
type PageConfig struct {
	ProfileURL   string
	WebSocketURL string
	Breakpoint   int
	WindowDays   int
}

type pageData struct {
	Page   *domain.LandingPage
	Config PageConfig
}

// PageHandler renders the landing page.
type PageHandler struct {
	content      ports.ContentService
	cfg          PageConfig
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(content ports.ContentService, cfg PageConfig, errorHandler *ErrorHandler, logger *slog.Logger) *PageHandler {
	if cfg.Breakpoint <= 0 {
		cfg.Breakpoint = domain.Breakpoint
	}
	if cfg.WebSocketURL == "" {
		cfg.WebSocketURL = "/ws/activity"
	}
	return &PageHandler{
		content:      content,
		cfg:          cfg,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// RegisterRoutes registers the page routes
func (h *PageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleIndex)
}

// HandleIndex fetches both CMS documents and renders the landing page. The
// page is rendered to a buffer first so a template failure still yields a
// clean error response.
func (h *PageHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := h.content.GetLandingPage(r.Context())
	if HandleError(w, r, err, h.errorHandler) {
		return
	}

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "index.html", pageData{Page: page, Config: h.cfg}); err != nil {
		logging.LoggerFromContext(r.Context(), h.logger).Error("failed to render landing page",
			slog.String("error", err.Error()),
		)
		h.errorHandler.Handle(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Accept-CH", viewportWidthHint)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
