package main

import (
	"log/slog"
	"os"
	"strings"
)

// newLogger creates the structured logger handed to the connection.
// Logs go to stderr so they never mix with command output.
func newLogger(cfg LogConfig) *slog.Logger {
	lvl := slog.LevelWarn
	switch strings.ToLower(cfg.Level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler).With("app", "mpd-cli", "pid", os.Getpid())
}
