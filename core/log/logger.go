package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	level  = new(slog.LevelVar)
	logger = newLogger(os.Stdout)
)

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

// With returns a logger carrying the given attributes, e.g. a request id.
func With(args ...any) *slog.Logger {
	return logger.With(args...)
}

func SetLevel(l slog.Level) {
	level.Set(l)
}

// SetOutput redirects all subsequent log lines to w
func SetOutput(w io.Writer) {
	logger = newLogger(w)
}

// ParseLevel maps a textual level to slog. Unknown values fall back to info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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
