// Package config centralises environment configuration for the scorer.
// It is imported only by cmd/trustscore (and test code); everything else
// receives an already-built Config by value.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	apperrors "github.com/dnishkina/trustscore/internal/errors"
)

// Config holds every runtime option the scorer needs.
type Config struct {
	// Credentials
	GitHubToken string

	// External endpoints; overridable for tests and mirrors.
	GitHubAPIBaseURL string
	NPMRegistryURL   string

	// Transport tuning
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	MaxRetryAttempts  uint

	// Logging
	LogFile  string
	LogLevel string

	// Serve mode
	Port string
}

// Load parses the environment (and an optional .env file) into Config.
// A missing GITHUB_TOKEN is a fatal configuration error: the caller must
// abort before any repository is processed.
func Load() (Config, error) {
	// godotenv.Load() is a no-op if .env doesn't exist.
	_ = godotenv.Load()

	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return Config{}, apperrors.NewConfigurationError("env var GITHUB_TOKEN is required", nil)
	}

	return Config{
		GitHubToken:       token,
		GitHubAPIBaseURL:  getEnv("GITHUB_API_URL", "https://api.github.com"),
		NPMRegistryURL:    getEnv("NPM_REGISTRY_URL", "https://registry.npmjs.org"),
		RequestTimeout:    getDuration("REQUEST_TIMEOUT_SEC", 15),
		RequestsPerSecond: getFloat("GITHUB_RPS", 5),
		MaxRetryAttempts:  getUint("MAX_RETRY_ATTEMPTS", 3),
		LogFile:           os.Getenv("LOG_FILE"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		Port:              getEnv("PORT", "8080"),
	}, nil
}

// getEnv returns env[key] if set, otherwise defaultVal.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getDuration reads an integer (seconds) from env, falling back to defaultSec.
func getDuration(key string, defaultSec int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			return time.Duration(sec) * time.Second
		}
	}
	return time.Duration(defaultSec) * time.Second
}

func getFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultVal
}

func getUint(key string, defaultVal uint) uint {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			return uint(n)
		}
	}
	return defaultVal
}
