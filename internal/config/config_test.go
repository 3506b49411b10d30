package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CMS_GRAPHQL_ENDPOINT", "https://cms.example.com/graphql")
	t.Setenv("CMS_PIXWING_GRAPHQL_ENDPOINT", "https://pixwing.example.com/graphql?token=secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 992, cfg.Activity.Breakpoint)
	assert.Equal(t, 10, cfg.GitHub.WindowDays)
	assert.Equal(t, "http://localhost:8080/api/getgithubstatus", cfg.Activity.Endpoint)
	assert.Equal(t, 10*time.Second, cfg.Activity.FetchTimeout)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", ":9090")
	t.Setenv("GITHUB_WINDOW_DAYS", "14")
	t.Setenv("ACTIVITY_FETCH_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "http://localhost:9090/api/getgithubstatus", cfg.Activity.Endpoint)
	assert.Equal(t, 14, cfg.GitHub.WindowDays)
	assert.Equal(t, 3*time.Second, cfg.Activity.FetchTimeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	t.Run("missing cms endpoints", func(t *testing.T) {
		cfg := &Config{
			GitHub:   GitHubConfig{WindowDays: 10},
			Activity: ActivityConfig{Endpoint: "http://localhost:8080/api/getgithubstatus", Breakpoint: 992},
		}

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CMS_GRAPHQL_ENDPOINT is required")
		assert.Contains(t, err.Error(), "CMS_PIXWING_GRAPHQL_ENDPOINT is required")
	})

	t.Run("production requires token and origins", func(t *testing.T) {
		cfg := &Config{
			CMS:      CMSConfig{Endpoint: "https://a", PixWingEndpoint: "https://b"},
			GitHub:   GitHubConfig{WindowDays: 10},
			Activity: ActivityConfig{Endpoint: "http://localhost:8080/api/getgithubstatus", Breakpoint: 992},
			App:      AppConfig{Environment: "production"},
		}

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GITHUB_TOKEN")
		assert.Contains(t, err.Error(), "WS_ALLOWED_ORIGINS")
	})

	t.Run("relative activity endpoint", func(t *testing.T) {
		cfg := &Config{
			CMS:      CMSConfig{Endpoint: "https://a", PixWingEndpoint: "https://b"},
			GitHub:   GitHubConfig{WindowDays: 10},
			Activity: ActivityConfig{Endpoint: "api/getgithubstatus", Breakpoint: 992},
		}

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ACTIVITY_ENDPOINT")
	})
}

func TestString_RedactsSecrets(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_supersecret")

	cfg, err := Load()
	require.NoError(t, err)

	s := cfg.String()
	assert.NotContains(t, s, "ghp_supersecret")
	assert.NotContains(t, s, "token=secret")
	assert.Contains(t, s, "[REDACTED]")
}
