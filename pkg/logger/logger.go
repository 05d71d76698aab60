package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Log is usable before Init so packages and tests never hit a nil logger
var Log = slog.Default()

func Init(level string) {
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	Log = slog.New(handler)
}

// ParseLevel maps LOG_LEVEL values to slog levels, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
