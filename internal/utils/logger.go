package utils

import (
	"log/slog"
	"os"
)

// Logger wraps slog with a process-exit helper. Output is JSON on
// stdout so the registry's deployments can ship log lines as-is.
type Logger struct {
	*slog.Logger
}

// NewLogger builds a logger at the named level ("debug", "info",
// "warn", "error", case-insensitive). Unknown values fall back to
// info rather than failing startup.
func NewLogger(level string) *Logger {
	var minLevel slog.Level
	if err := minLevel.UnmarshalText([]byte(level)); err != nil {
		minLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: minLevel})
	return &Logger{Logger: slog.New(handler)}
}

// Fatal logs at error level and exits. Reserved for startup failures
// in main; request paths return errors instead.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Error(msg, args...)
	os.Exit(1)
}
