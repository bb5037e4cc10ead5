// Package logging builds the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"freight/internal/configuration"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ParseLevel maps debug, info, warn, warning and error (any case) to a slog level.
// Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// New creates a JSON logger. Records go to a rotating file when cfg.File is set and to
// console otherwise. The returned function releases the file and must be called on shutdown.
func New(cfg configuration.LoggerConfig, console io.Writer) (*slog.Logger, func() error) {
	out := console
	closer := func() error { return nil }

	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			Compress:   true,
		}
		out = file
		closer = file.Close
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	})

	return slog.New(handler), closer
}

// Setup installs the logger built by New as the slog default.
func Setup(cfg configuration.LoggerConfig, console io.Writer) func() error {
	logger, closer := New(cfg, console)
	slog.SetDefault(logger)
	return closer
}
