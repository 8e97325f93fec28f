// Package app - logging.go configures the process-wide structured logger.
package app

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLogLevel maps a level name to a slog.Level. Unknown names fall back
// to warn so normal command output stays quiet by default.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// LogLevelFromEnv resolves the active verbosity from RECPLAN_LOG_LEVEL.
func LogLevelFromEnv() slog.Level {
	return ParseLogLevel(os.Getenv(EnvLogLevel))
}

// NewLogger creates a logger writing text records to w at the given level.
// It does not set the global logger, allowing for isolated logger instances.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
