package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadMissingReturnsDefaults: an absent config file is not an error.
func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 1280, cfg.Display.WindowWidth)
	assert.Equal(t, "Default", cfg.Display.DefaultPreset)
	assert.Equal(t, "#FFFF00", cfg.Annotation.DefaultColor)
	assert.Equal(t, 50, cfg.History.Depth)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

// TestLoadPartialKeepsDefaults: keys absent from the file keep their
// default values.
func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  windowWidth: 1920\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1920, cfg.Display.WindowWidth)
	assert.Equal(t, 900, cfg.Display.WindowHeight)
	assert.InDelta(t, 0.5, cfg.Display.HeatmapOpacity, 1e-9)
}

// TestSaveLoadRoundTrip writes a config out and reads it back.
func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Display.InvertByDefault = true
	cfg.Annotation.DefaultColor = "#00FF80"
	cfg.Logging.Level = "DEBUG"
	require.NoError(t, SaveConfig(cfg, path))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, got.Display.InvertByDefault)
	assert.Equal(t, "#00FF80", got.Annotation.DefaultColor)
	assert.Equal(t, "DEBUG", got.Logging.Level)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display: [not a map"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#00FF80")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0, G: 255, B: 128, A: 255}, c)

	_, err = ParseColor("yellow")
	assert.Error(t, err)
}
