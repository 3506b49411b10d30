package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpAdapter "github.com/pixwingai/pixwing-site/internal/adapters/primary/http"
	mw "github.com/pixwingai/pixwing-site/internal/adapters/primary/http/middleware"
	"github.com/pixwingai/pixwing-site/internal/adapters/primary/websocket"
	"github.com/pixwingai/pixwing-site/internal/adapters/secondary/activityhttp"
	"github.com/pixwingai/pixwing-site/internal/adapters/secondary/chartrender"
	"github.com/pixwingai/pixwing-site/internal/adapters/secondary/cms"
	"github.com/pixwingai/pixwing-site/internal/adapters/secondary/github"
	"github.com/pixwingai/pixwing-site/internal/config"
	"github.com/pixwingai/pixwing-site/internal/core/services"
	"github.com/pixwingai/pixwing-site/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.FromDefaults(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	}))

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"config", cfg.String(),
	)

	// 3. Initialize Real-time Components
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	// 4. Initialize Rate Limiters
	var generalRateLimiter, apiRateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		generalCfg := mw.DefaultRateLimiterConfig()
		generalCfg.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		generalCfg.BurstSize = cfg.RateLimit.BurstSize
		generalRateLimiter = mw.NewRateLimiter(generalCfg)
		defer generalRateLimiter.Stop()

		apiCfg := mw.APIRateLimiterConfig()
		apiCfg.RequestsPerSecond = cfg.RateLimit.APIRPS
		apiCfg.BurstSize = cfg.RateLimit.APIBurst
		apiRateLimiter = mw.NewRateLimiter(apiCfg)
		defer apiRateLimiter.Stop()
	}

	// 5. Dependency Injection (Wiring the Hexagon)

	// Error Handler
	errorHandler := httpAdapter.NewErrorHandler(logger)

	// Upstreams (Secondary Adapters)
	homeRepo := cms.NewHomePageRepository(cfg.CMS.Endpoint, cfg.CMS.Timeout, logger)
	pixWingRepo := cms.NewPixWingRepository(cfg.CMS.PixWingEndpoint, cfg.CMS.Timeout, logger)
	contributionsClient := github.NewContributionsClient(cfg.GitHub.GraphQLEndpoint, cfg.GitHub.Token, cfg.GitHub.Timeout, logger)
	fetcher := activityhttp.NewFetcher(cfg.Activity.Endpoint, cfg.Activity.FetchTimeout)
	renderer := chartrender.NewPNGRenderer()
	chartFactory := services.DefaultChartFactory{}

	// Services (Core)
	contentService := services.NewContentService(homeRepo, pixWingRepo, logger)
	contributionService := services.NewContributionService(contributionsClient, cfg.GitHub.Username, cfg.GitHub.WindowDays)

	// Handlers (Primary Adapters)
	pageHandler := httpAdapter.NewPageHandler(contentService, httpAdapter.PageConfig{
		ProfileURL: cfg.GitHub.ProfileURL,
		Breakpoint: cfg.Activity.Breakpoint,
		WindowDays: cfg.GitHub.WindowDays,
	}, errorHandler, logger)
	activityHandler := httpAdapter.NewActivityHandler(
		contributionService,
		fetcher,
		chartFactory,
		renderer,
		cfg.Activity.Breakpoint,
		errorHandler,
		logger,
	)
	wsHandler := httpAdapter.NewWebSocketHandler(hub, fetcher, chartFactory, cfg, logger)
	healthHandler := httpAdapter.NewHealthHandler(map[string]httpAdapter.HealthChecker{
		"cms":         homeRepo,
		"cms_pixwing": pixWingRepo,
	}, cfg.App.Version)

	// 6. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))

	// Probe and scrape endpoints
	healthHandler.RegisterRoutes(r)
	r.Handle("/metrics", promhttp.Handler())
	httpAdapter.RegisterStaticRoutes(r)

	// Page and widget session, general rate limit
	r.Group(func(r chi.Router) {
		if generalRateLimiter != nil {
			r.Use(generalRateLimiter.Middleware)
		}
		pageHandler.RegisterRoutes(r)
		r.Get("/ws/activity", wsHandler.ServeHTTP)
	})

	// JSON and image API
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         cfg.CORS.MaxAge,
		}))

		var activityMiddlewares []func(http.Handler) http.Handler
		if apiRateLimiter != nil {
			activityMiddlewares = append(activityMiddlewares, apiRateLimiter.Middleware)
		}
		activityHandler.RegisterRoutes(r, activityMiddlewares...)
	})

	// 7. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Hijacked websocket connections are not tracked by Shutdown; the hub
	// closes them.
	stop()
	select {
	case <-hub.Done():
	case <-time.After(cfg.Server.ShutdownTimeout):
		logger.Warn("websocket hub did not stop in time")
	}

	// Graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}
