// Package config loads the whiteboard settings from YAML and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"RasterBoard/internal/board"
	"RasterBoard/internal/state"
)

// EnvPrefix prefixes environment overrides, e.g. RASTERBOARD_HISTORY_LIMIT.
const EnvPrefix = "RASTERBOARD"

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window     WindowConfig  `mapstructure:"window"`
	Background string        `mapstructure:"background"`
	Pen        PenConfig     `mapstructure:"pen"`
	Eraser     EraserConfig  `mapstructure:"eraser"`
	History    HistoryConfig `mapstructure:"history"`
	Export     ExportConfig  `mapstructure:"export"`
}

type WindowConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type PenConfig struct {
	Color  string            `mapstructure:"color"`
	Level  string            `mapstructure:"level"`
	Widths state.WidthLevels `mapstructure:"widths"`
}

type EraserConfig struct {
	Width float64 `mapstructure:"width"`
}

type HistoryConfig struct {
	// Limit caps the number of undo entries. 0 keeps every entry.
	Limit int `mapstructure:"limit"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// DefaultConfig is what Load returns when no file or environment override
// is present.
func DefaultConfig() Config {
	return Config{
		Window:     WindowConfig{Width: 1000, Height: 700},
		Background: state.White.Hex(),
		Pen: PenConfig{
			Color:  state.Black.Hex(),
			Level:  state.Medium.String(),
			Widths: state.DefaultWidthLevels,
		},
		Eraser: EraserConfig{Width: state.DefaultEraserWidth},
		Export: ExportConfig{Dir: "."},
	}
}

// DefaultConfigPath is config.yaml under the user config directory
// ($XDG_CONFIG_HOME/rasterboard on Linux).
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rasterboard", "config.yaml"), nil
}

// Load reads configuration from path. An empty path means DefaultConfigPath,
// which may be missing; an explicit path must exist.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err == nil {
			if _, statErr := os.Stat(defaultPath); statErr == nil {
				path = defaultPath
			} else if !errors.Is(statErr, fs.ErrNotExist) {
				return Config{}, statErr
			}
		}
	}

	cfg := DefaultConfig()
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("window.width", cfg.Window.Width)
	v.SetDefault("window.height", cfg.Window.Height)
	v.SetDefault("background", cfg.Background)
	v.SetDefault("pen.color", cfg.Pen.Color)
	v.SetDefault("pen.level", cfg.Pen.Level)
	v.SetDefault("pen.widths.thin", cfg.Pen.Widths.Thin)
	v.SetDefault("pen.widths.medium", cfg.Pen.Widths.Medium)
	v.SetDefault("pen.widths.thick", cfg.Pen.Widths.Thick)
	v.SetDefault("eraser.width", cfg.Eraser.Width)
	v.SetDefault("history.limit", cfg.History.Limit)
	v.SetDefault("export.dir", cfg.Export.Dir)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Export.Dir = os.ExpandEnv(cfg.Export.Dir)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field that BoardOptions would otherwise have to
// reject.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d must be positive", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if _, err := state.ParseHex(c.Background); err != nil {
		return fmt.Errorf("%w: background: %w", ErrInvalid, err)
	}
	if _, err := state.ParseHex(c.Pen.Color); err != nil {
		return fmt.Errorf("%w: pen.color: %w", ErrInvalid, err)
	}
	if _, err := state.ParseWidthLevel(c.Pen.Level); err != nil {
		return fmt.Errorf("%w: pen.level: %w", ErrInvalid, err)
	}
	w := c.Pen.Widths
	if w.Thin <= 0 || w.Medium <= 0 || w.Thick <= 0 {
		return fmt.Errorf("%w: pen.widths must be positive", ErrInvalid)
	}
	if c.Eraser.Width <= 0 {
		return fmt.Errorf("%w: eraser.width must be positive", ErrInvalid)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("%w: history.limit must not be negative", ErrInvalid)
	}
	return nil
}

// BoardOptions converts the configuration into board options.
func (c Config) BoardOptions() (board.Options, error) {
	if err := c.Validate(); err != nil {
		return board.Options{}, err
	}
	bg, _ := state.ParseHex(c.Background)
	pen, _ := state.ParseHex(c.Pen.Color)
	level, _ := state.ParseWidthLevel(c.Pen.Level)

	opts := board.DefaultOptions()
	opts.Background = bg
	opts.Color = pen
	opts.Levels = c.Pen.Widths
	opts.Level = level
	opts.EraserWidth = c.Eraser.Width
	opts.HistoryLimit = c.History.Limit
	return opts, nil
}
