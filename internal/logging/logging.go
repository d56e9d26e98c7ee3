// Package logging builds slog loggers for the CLI, the API server, and the
// capture watcher from a single configuration.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls handler selection and verbosity.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	File   string // optional log file path; stderr when empty
}

// New creates a logger from cfg. When cfg.File is set the returned closer
// must be called on shutdown; otherwise it is a no-op.
func New(cfg Config) (*slog.Logger, func() error, error) {
	var w io.Writer = os.Stderr
	closer := func() error { return nil }

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closer = f.Close
	}

	opts := &slog.HandlerOptions{Level: LevelFromString(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler), closer, nil
}

// NewDiscard creates a logger that drops all output. Used in tests and as a
// fallback when a log destination cannot be opened.
func NewDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(100)}))
}

// LevelFromString converts a level name to a slog.Level.
// Unrecognized strings fall back to info.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
