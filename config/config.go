// Package config loads the game settings from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/plus3/tetrino/texture"
	"gopkg.in/yaml.v3"
)

// Config is the top-level settings file.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Board  BoardConfig  `yaml:"board"`
	Piece  PieceConfig  `yaml:"piece"`
	Random RandomConfig `yaml:"random"`
	Assets AssetsConfig `yaml:"assets"`
	Log    LogConfig    `yaml:"log"`
	Debug  bool         `yaml:"debug"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// TPS is the number of updates per second.
	TPS int `yaml:"tps"`
}

type BoardConfig struct {
	// TileSize is the edge of one cell in world units, which the camera maps 1:1 to pixels.
	TileSize float32 `yaml:"tile_size"`
}

type PieceConfig struct {
	// FallRate is measured in tiles per second.
	FallRate float32 `yaml:"fall_rate"`
}

type RandomConfig struct {
	// Seed 0 seeds from the clock.
	Seed uint64 `yaml:"seed"`
}

// AssetsConfig locates the tile images. Paths are relative to Root.
type AssetsConfig struct {
	Root          string `yaml:"root"`
	texture.Paths `yaml:",inline"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// File enables a rotating log file when set.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the built-in settings.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads path and fills unset fields with defaults. An empty path returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML settings.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Window.Title == "" {
		cfg.Window.Title = "tetrino"
	}
	if cfg.Window.Width == 0 {
		cfg.Window.Width = 640
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = 720
	}
	if cfg.Window.TPS == 0 {
		cfg.Window.TPS = 60
	}
	if cfg.Board.TileSize == 0 {
		cfg.Board.TileSize = 32
	}
	if cfg.Piece.FallRate == 0 {
		cfg.Piece.FallRate = 0.2
	}
	if cfg.Assets.Root == "" {
		cfg.Assets.Root = "assets"
	}
	cfg.Assets.Paths = cfg.Assets.Paths.WithDefaults()
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 10
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 3
	}
}

// Validate rejects settings the game cannot run with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("window.tps must be positive, got %d", c.Window.TPS)
	}
	if c.Board.TileSize <= 0 {
		return fmt.Errorf("board.tile_size must be positive, got %.2f", c.Board.TileSize)
	}
	if c.Piece.FallRate <= 0 {
		return fmt.Errorf("piece.fall_rate must be positive, got %.2f", c.Piece.FallRate)
	}
	if err := c.Assets.Paths.Validate(); err != nil {
		return fmt.Errorf("assets: %w", err)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return fmt.Errorf("log rotation limits must not be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}
