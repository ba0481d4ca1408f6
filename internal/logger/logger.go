// Package logger builds the application's *slog.Logger.
//
// Development (dev): human-readable text output at DEBUG level.
// Staging/production: machine-readable JSON output.
package logger

import (
	"io"
	"log/slog"
)

// New returns a logger writing to w, configured for env.
// debug forces DEBUG level regardless of env.
func New(env string, debug bool, w io.Writer) *slog.Logger {
	var handler slog.Handler

	switch env {
	case "prod":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level(slog.LevelInfo, debug),
		})
	case "staging":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	default: // "dev" and anything unrecognised
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return slog.New(handler)
}

func level(base slog.Level, debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return base
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
