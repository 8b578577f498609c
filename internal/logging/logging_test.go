package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat(""))
}

func TestNew_FileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rebinder.log")
	l, err := New(Config{
		Level:     slog.LevelDebug,
		Format:    FormatJSON,
		Output:    "file",
		FilePath:  path,
		Component: "rebinder",
	})
	require.NoError(t, err)

	l.Info("binding applied", "element", "Gameplay/GameplayJump")
	l.Debug("binding swapped")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "binding applied", rec["msg"])
	assert.Equal(t, "rebinder", rec["app"])
	assert.Equal(t, "Gameplay/GameplayJump", rec["element"])
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rebinder.log")
	l, err := New(Config{Level: slog.LevelWarn, Output: "file", FilePath: path})
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("kept")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestNew_Discard(t *testing.T) {
	l, err := New(Config{Output: "discard"})
	require.NoError(t, err)
	l.Error("nowhere")
	assert.NoError(t, l.Close())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelInfo, cfg.Level)
	assert.Equal(t, "file", cfg.Output)
}
