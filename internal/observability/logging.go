package observability

import (
	"log/slog"
	"os"

	"github.com/couchcryptid/storm-alert-notifier/internal/config"
)

// NewLogger builds the service logger from the configured level and format.
// The logger is passed explicitly to every component; nothing in this repo
// uses the slog default.
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler).With("service", "storm-alert-notifier")
}
