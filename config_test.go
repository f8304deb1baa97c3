package sceneedit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "editor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
handle_pixel_tolerance: 12
ring_segments: 24
debug: true
keys:
  toggle_mode: 50
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, float32(12), cfg.HandlePixelTolerance)
	assert.Equal(t, 24, cfg.RingSegments)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 50, cfg.Keys.ToggleMode)

	def := DefaultConfig()
	assert.Equal(t, def.DragDeadzone, cfg.DragDeadzone, "unset fields keep their defaults")
	assert.Equal(t, def.Keys.Undo, cfg.Keys.Undo)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", "ring_segments: [1, 2"},
		{"too few ring segments", "ring_segments: 8"},
		{"too many ring segments", "ring_segments: 64"},
		{"zero tolerance", "handle_pixel_tolerance: 0"},
		{"negative deadzone", "drag_deadzone: -1"},
		{"zero min scale", "min_scale_factor: 0"},
		{"zero max distance", "max_distance: 0"},
		{"key code out of range", "keys:\n  toggle_mode: 999"},
		{"negative key code", "keys:\n  cancel: -1"},
		{"key code at bound", "keys:\n  undo: 256"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "editor config")
			assert.Equal(t, DefaultConfig(), cfg)
		})
	}
}
