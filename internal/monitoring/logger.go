package monitoring

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger provides structured logging helpers for the scoring pipeline.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger writing to w at the given level.
// Recognised levels: debug, info, warn, error; anything else means info.
func NewLogger(w io.Writer, level string) *Logger {
	if w == nil {
		w = os.Stderr
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})

	return &Logger{Logger: slog.New(handler)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ExternalAPILogger logs external API calls
func (l *Logger) ExternalAPILogger(apiName, method, endpoint string, statusCode int, duration time.Duration, success bool) {
	if success {
		l.Info("External API Call",
			"api_name", apiName,
			"method", method,
			"endpoint", endpoint,
			"status_code", statusCode,
			"duration_ms", duration.Milliseconds(),
		)
		return
	}

	l.Warn("External API Call",
		"api_name", apiName,
		"method", method,
		"endpoint", endpoint,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// ReportLogger logs the completion of one repository's scoring run.
func (l *Logger) ReportLogger(runID, url string, netScore float64, duration time.Duration) {
	l.Info("Report Completed",
		"run_id", runID,
		"url", url,
		"net_score", netScore,
		"duration_ms", duration.Milliseconds(),
	)
}

// RowErrorLogger logs a repository that degraded to an error row.
func (l *Logger) RowErrorLogger(runID, url string, err error) {
	l.Warn("Row Error",
		"run_id", runID,
		"url", url,
		"error", err.Error(),
	)
}
