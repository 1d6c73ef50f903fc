// Package logger provides structured logging for the application using
// Go's standard library log/slog package.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/todoworks/todo-pipeline/internal/config"
)

// Setup initializes the application's logging based on the provided
// configuration. It creates a structured JSON logger with the configured
// level, sets it as the default logger, and returns it.
func Setup(cfg config.ServerConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
