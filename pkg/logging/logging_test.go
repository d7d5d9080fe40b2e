package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for name, want := range tests {
		assert.Equal(t, want, ParseLevel(name), "level %q", name)
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn, false)
	logger.Info("hidden")
	logger.Warn("shown", "expense_id", "e1")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "expense_id=e1")
	assert.NotContains(t, out, "\x1b[", "no color codes when not writing to a terminal")

	buf.Reset()
	New(&buf, slog.LevelInfo, true).Info("json", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"json"`)
}
