package utils

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewLoggerLevelParsing(t *testing.T) {
	tests := []struct {
		level   string
		debugOn bool
	}{
		{"debug", true},
		{"DEBUG", true},
		{"info", false},
		{"warn", false},
		{"desconhecido", false},
		{"", false},
	}

	for _, tt := range tests {
		logger := NewLogger(tt.level)
		if got := logger.Enabled(context.Background(), slog.LevelDebug); got != tt.debugOn {
			t.Errorf("NewLogger(%q): debug enabled = %v, want %v", tt.level, got, tt.debugOn)
		}
		if !logger.Enabled(context.Background(), slog.LevelError) {
			t.Errorf("NewLogger(%q): error level must always be enabled", tt.level)
		}
	}
}
