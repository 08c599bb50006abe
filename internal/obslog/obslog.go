// Package obslog sets up manetsim's structured logger: a slog.Logger
// backed by a shared slog.LevelVar, so the log level can be read (and,
// via the LevelVar's Set method, changed) without re-creating the logger.
package obslog

import (
	"log/slog"
	"os"
)

// New builds a logger writing to stderr in the given format ("json" or
// "text"), at the given level ("debug", "info", "warn", "error").
// Returns the logger and the LevelVar backing it.
func New(format, level string) (*slog.Logger, *slog.LevelVar) {
	lv := new(slog.LevelVar)
	lv.Set(ParseLevel(level))

	opts := &slog.HandlerOptions{Level: lv}
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler), lv
}

// ParseLevel maps a level name to a slog.Level, defaulting to Info for
// anything unrecognized.
func ParseLevel(s string) slog.Level {
	switch s {
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
