package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dnishkina/trustscore/internal/errors"
)

func TestLoadRequiresGitHubToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	_, err := Load()
	require.Error(t, err)

	appErr := apperrors.ToAppError(err)
	assert.Equal(t, apperrors.CategoryConfiguration, appErr.Category)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("GITHUB_API_URL", "")
	t.Setenv("REQUEST_TIMEOUT_SEC", "")
	t.Setenv("GITHUB_RPS", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ghp_test", cfg.GitHubToken)
	assert.Equal(t, "https://api.github.com", cfg.GitHubAPIBaseURL)
	assert.Equal(t, "https://registry.npmjs.org", cfg.NPMRegistryURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5.0, cfg.RequestsPerSecond)
	assert.Equal(t, uint(3), cfg.MaxRetryAttempts)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("GITHUB_API_URL", "http://localhost:9999")
	t.Setenv("REQUEST_TIMEOUT_SEC", "30")
	t.Setenv("GITHUB_RPS", "2.5")
	t.Setenv("MAX_RETRY_ATTEMPTS", "5")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/tmp/trustscore.log")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.GitHubAPIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2.5, cfg.RequestsPerSecond)
	assert.Equal(t, uint(5), cfg.MaxRetryAttempts)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/trustscore.log", cfg.LogFile)
}

func TestLoadIgnoresInvalidNumericValues(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("REQUEST_TIMEOUT_SEC", "not-a-number")
	t.Setenv("GITHUB_RPS", "-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5.0, cfg.RequestsPerSecond)
}
