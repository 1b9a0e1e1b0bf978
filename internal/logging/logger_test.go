package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewFormats(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", "json").Info("generated", "count", 3)
	assert.Contains(t, buf.String(), `"count":3`)

	buf.Reset()
	New(&buf, "info", "text").Info("generated", "count", 3)
	assert.Contains(t, buf.String(), "count=3")

	buf.Reset()
	New(&buf, "error", "text").Info("hidden")
	assert.Empty(t, buf.String())
}
