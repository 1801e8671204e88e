package config

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds the application logger. Production writes JSON, anything
// else writes text. An unrecognised level falls back to info.
func NewLogger(w io.Writer, environment, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if environment == "production" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
