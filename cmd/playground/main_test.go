package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/roguecore/internal/data"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), tt.in)
	}
}

func TestDemoScriptIsOrdered(t *testing.T) {
	script := demoScript(data.DefaultCatalog())
	for i := 1; i < len(script); i++ {
		assert.Greater(t, script[i].At, script[i-1].At, "cue %d", i)
	}
}
