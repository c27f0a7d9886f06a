// Package logging builds the process-wide slog logger. Both binaries log
// JSON with a service tag; auxiliary processes add a component tag so their
// lines are separable from the API's in a shared stream.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns the JSON logger for a process. The level string comes straight
// from config (LOG_LEVEL); anything unrecognized runs at info.
func New(service, component, level string) *slog.Logger {
	return newLogger(os.Stdout, service, component, level)
}

func newLogger(w io.Writer, service, component, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	logger := slog.New(handler).With(slog.String("service", service))
	if component != "" {
		logger = logger.With(slog.String("component", component))
	}
	return logger
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "fatal":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
