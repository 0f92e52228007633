package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RasterBoard/internal/state"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWhenDefaultFileIsMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	opts, err := cfg.BoardOptions()
	require.NoError(t, err)
	assert.Equal(t, state.White, opts.Background)
	assert.Equal(t, state.Black, opts.Color)
	assert.Equal(t, state.Medium, opts.Level)
	assert.Equal(t, state.DefaultEraserWidth, opts.EraserWidth)
	assert.Zero(t, opts.HistoryLimit)
}

func TestLoadReadsDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	path, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "rasterboard", "config.yaml"), path)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("history:\n  limit: 12\n"), 0o600))
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.History.Limit)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 640
  height: 480
background: "#102030"
pen:
  color: "#ff0000"
  level: thick
  widths:
    thin: 1
    medium: 4
    thick: 16
eraser:
  width: 30
history:
  limit: 50
export:
  dir: /tmp/boards
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)

	opts, err := cfg.BoardOptions()
	require.NoError(t, err)
	assert.Equal(t, state.RGB{R: 0x10, G: 0x20, B: 0x30}, opts.Background)
	assert.Equal(t, state.RGB{R: 0xff}, opts.Color)
	assert.Equal(t, state.Thick, opts.Level)
	assert.Equal(t, state.WidthLevels{Thin: 1, Medium: 4, Thick: 16}, opts.Levels)
	assert.Equal(t, 30.0, opts.EraserWidth)
	assert.Equal(t, 50, opts.HistoryLimit)
	assert.Equal(t, "/tmp/boards", cfg.Export.Dir)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "pen:\n  level: thin\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "thin", cfg.Pen.Level)
	assert.Equal(t, state.DefaultWidthLevels, cfg.Pen.Widths)
	assert.Equal(t, DefaultConfig().Window, cfg.Window)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("RASTERBOARD_HISTORY_LIMIT", "7")
	t.Setenv("RASTERBOARD_PEN_COLOR", "#00ff00")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.History.Limit)
	assert.Equal(t, "#00ff00", cfg.Pen.Color)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"window":     "window:\n  width: 0\n",
		"background": "background: \"#12\"\n",
		"pen color":  "pen:\n  color: purple\n",
		"pen level":  "pen:\n  level: huge\n",
		"pen widths": "pen:\n  widths:\n    thin: -1\n",
		"eraser":     "eraser:\n  width: 0\n",
		"history":    "history:\n  limit: -3\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
		})
	}
}
