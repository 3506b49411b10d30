package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	wsAdapter "github.com/pixwingai/pixwing-site/internal/adapters/primary/websocket"
	"github.com/pixwingai/pixwing-site/internal/config"
	"github.com/pixwingai/pixwing-site/internal/core/ports"
	"github.com/pixwingai/pixwing-site/internal/core/services"
	"github.com/pixwingai/pixwing-site/internal/infrastructure/logging"
)

// WebSocketHandler upgrades connections into live activity widget sessions
type WebSocketHandler struct {
	hub        *wsAdapter.Hub
	source     ports.ActivitySource
	factory    ports.ChartFactory
	breakpoint int
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(
	hub *wsAdapter.Hub,
	source ports.ActivitySource,
	factory ports.ChartFactory,
	cfg *config.Config,
	logger *slog.Logger,
) *WebSocketHandler {
	handler := &WebSocketHandler{
		hub:        hub,
		source:     source,
		factory:    factory,
		breakpoint: cfg.Activity.Breakpoint,
		logger:     logger,
	}

	handler.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
		CheckOrigin:     handler.makeOriginChecker(cfg),
	}

	return handler
}

// makeOriginChecker creates an origin checking function based on configuration
func (h *WebSocketHandler) makeOriginChecker(cfg *config.Config) func(r *http.Request) bool {
	allowedOrigins := cfg.WebSocket.AllowedOrigins
	development := cfg.IsDevelopment()

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		if development {
			if origin != "" {
				h.logger.Debug("allowing websocket connection in development mode",
					slog.String("origin", origin),
					slog.String("remote_addr", r.RemoteAddr),
				)
			}
			return true
		}

		// No origin header (same-origin request or non-browser client)
		if origin == "" {
			return true
		}

		parsedOrigin, err := url.Parse(origin)
		if err != nil {
			h.logger.Warn("failed to parse websocket origin",
				slog.String("origin", origin),
				slog.String("error", err.Error()),
			)
			return false
		}

		if originAllowed(parsedOrigin.Host, allowedOrigins) || parsedOrigin.Host == r.Host {
			return true
		}

		h.logger.Warn("websocket connection rejected due to origin",
			slog.String("origin", origin),
			slog.String("remote_addr", r.RemoteAddr),
			slog.Any("allowed_origins", allowedOrigins),
		)
		return false
	}
}

// originAllowed matches host against exact entries and "*.example.com"
// wildcard subdomains.
func originAllowed(host string, allowed []string) bool {
	for _, a := range allowed {
		if strings.HasPrefix(a, "*.") {
			if strings.HasSuffix(host, a[1:]) || host == a[2:] {
				return true
			}
		} else if host == a {
			return true
		}
	}
	return false
}

// ServeHTTP handles WebSocket connection requests
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.LoggerFromContext(r.Context(), h.logger)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		logger.Warn("failed to upgrade websocket connection", slog.String("error", err.Error()))
		return
	}

	widget := services.NewActivityWidget(h.source, h.factory, h.breakpoint, h.logger)
	client := wsAdapter.NewClient(h.hub, conn, widget, h.logger)

	logger.Info("websocket connection established",
		slog.String("session_id", client.SessionID.String()),
		slog.String("remote_addr", r.RemoteAddr),
	)

	client.Start()
}
