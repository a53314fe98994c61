package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger returns a logger writing to w. level may be "debug", "info", "warn" or "error"
// (default "info") and format may be "json" or "text" (default "text").
func NewLogger(w io.Writer, level string, format string) *slog.Logger {

	var lvl slog.Level

	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler

	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// SetupLogger installs a logger writing to STDERR as the slog default and returns it.
func SetupLogger(level string, format string) *slog.Logger {

	logger := NewLogger(os.Stderr, level, format)
	slog.SetDefault(logger)

	return logger
}
