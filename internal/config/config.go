package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Headless CMS endpoints
	CMS CMSConfig

	// GitHub contributions backend
	GitHub GitHubConfig

	// Activity widget configuration
	Activity ActivityConfig

	// Rate limiting configuration
	RateLimit RateLimitConfig

	// CORS configuration for the JSON API
	CORS CORSConfig

	// WebSocket configuration
	WebSocket WebSocketConfig

	// Logging configuration
	Logging LoggingConfig

	// Application metadata
	App AppConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// CMSConfig holds the two GraphQL endpoints the landing page is hydrated from
type CMSConfig struct {
	Endpoint        string
	PixWingEndpoint string
	Timeout         time.Duration
}

// GitHubConfig holds configuration for the contributions calendar backend
type GitHubConfig struct {
	GraphQLEndpoint string
	Token           string
	Username        string
	WindowDays      int
	ProfileURL      string
	Timeout         time.Duration
}

// ActivityConfig holds configuration for the activity widget fetcher
type ActivityConfig struct {
	Endpoint     string
	FetchTimeout time.Duration
	Breakpoint   int
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	APIRPS            float64 // Stricter limit for the JSON/image API
	APIBurst          int
}

// CORSConfig holds CORS configuration for /api routes
type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         int
}

// WebSocketConfig holds WebSocket configuration
type WebSocketConfig struct {
	AllowedOrigins  []string
	ReadBufferSize  int
	WriteBufferSize int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	port := getEnvOrDefault("SERVER_PORT", ":8080")

	cfg := &Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getDurationOrDefault("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		CMS: CMSConfig{
			Endpoint:        os.Getenv("CMS_GRAPHQL_ENDPOINT"),
			PixWingEndpoint: os.Getenv("CMS_PIXWING_GRAPHQL_ENDPOINT"),
			Timeout:         getDurationOrDefault("CMS_TIMEOUT", 10*time.Second),
		},
		GitHub: GitHubConfig{
			GraphQLEndpoint: getEnvOrDefault("GITHUB_GRAPHQL_ENDPOINT", "https://api.github.com/graphql"),
			Token:           os.Getenv("GITHUB_TOKEN"),
			Username:        getEnvOrDefault("GITHUB_USERNAME", "theninza"),
			WindowDays:      getIntOrDefault("GITHUB_WINDOW_DAYS", 10),
			ProfileURL:      getEnvOrDefault("GITHUB_PROFILE_URL", "https://github.com/theninza"),
			Timeout:         getDurationOrDefault("GITHUB_TIMEOUT", 10*time.Second),
		},
		Activity: ActivityConfig{
			Endpoint:     getEnvOrDefault("ACTIVITY_ENDPOINT", "http://localhost"+port+"/api/getgithubstatus"),
			FetchTimeout: getDurationOrDefault("ACTIVITY_FETCH_TIMEOUT", 10*time.Second),
			Breakpoint:   getIntOrDefault("ACTIVITY_BREAKPOINT", 992),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getBoolOrDefault("RATE_LIMIT_ENABLED", true),
			RequestsPerSecond: getFloatOrDefault("RATE_LIMIT_RPS", 10),
			BurstSize:         getIntOrDefault("RATE_LIMIT_BURST", 20),
			APIRPS:            getFloatOrDefault("RATE_LIMIT_API_RPS", 2),
			APIBurst:          getIntOrDefault("RATE_LIMIT_API_BURST", 10),
		},
		CORS: CORSConfig{
			AllowedOrigins: getStringSliceOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
			MaxAge:         getIntOrDefault("CORS_MAX_AGE", 300),
		},
		WebSocket: WebSocketConfig{
			AllowedOrigins:  getStringSliceOrDefault("WS_ALLOWED_ORIGINS", []string{}),
			ReadBufferSize:  getIntOrDefault("WS_READ_BUFFER_SIZE", 1024),
			WriteBufferSize: getIntOrDefault("WS_WRITE_BUFFER_SIZE", 1024),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
		App: AppConfig{
			Name:        getEnvOrDefault("APP_NAME", "pixwing-site"),
			Version:     getEnvOrDefault("APP_VERSION", "dev"),
			Environment: getEnvOrDefault("APP_ENV", "development"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []string

	// Required fields
	if c.CMS.Endpoint == "" {
		errs = append(errs, "CMS_GRAPHQL_ENDPOINT is required")
	}

	if c.CMS.PixWingEndpoint == "" {
		errs = append(errs, "CMS_PIXWING_GRAPHQL_ENDPOINT is required")
	}

	if _, err := url.ParseRequestURI(c.Activity.Endpoint); err != nil {
		errs = append(errs, "ACTIVITY_ENDPOINT must be an absolute URL")
	}

	// Security validations
	if c.App.Environment == "production" {
		if c.GitHub.Token == "" {
			errs = append(errs, "GITHUB_TOKEN must be set in production")
		}

		if len(c.WebSocket.AllowedOrigins) == 0 {
			errs = append(errs, "WS_ALLOWED_ORIGINS must be set in production")
		}
	}

	// Logical validations
	if c.GitHub.WindowDays <= 0 {
		errs = append(errs, "GITHUB_WINDOW_DAYS must be positive")
	}

	if c.Activity.Breakpoint <= 0 {
		errs = append(errs, "ACTIVITY_BREAKPOINT must be positive")
	}

	if len(errs) > 0 {
		return errors.New("configuration errors:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// String returns a redacted string representation of the config (safe for logging)
func (c *Config) String() string {
	token := ""
	if c.GitHub.Token != "" {
		token = "[REDACTED]"
	}
	return fmt.Sprintf(
		"Config{Server: %s, CMS: %s | %s, GitHubToken: %s, Activity: %s, RateLimit: %v, Environment: %s}",
		c.Server.Port,
		redactURL(c.CMS.Endpoint),
		redactURL(c.CMS.PixWingEndpoint),
		token,
		c.Activity.Endpoint,
		c.RateLimit.Enabled,
		c.App.Environment,
	)
}

// redactURL strips query strings, which some CMS providers use to carry API tokens
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	if idx := strings.Index(raw, "?"); idx > 0 {
		return raw[:idx] + "?[REDACTED]"
	}
	return raw
}
