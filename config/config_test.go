package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/tetrino/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, float32(32), cfg.Board.TileSize)
	assert.Equal(t, float32(0.2), cfg.Piece.FallRate)
	assert.Equal(t, texture.DefaultPaths(), cfg.Assets.Paths)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Zero(t, cfg.Random.Seed)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		errContains string
		validate    func(*testing.T, *Config)
	}{
		{
			name: "full config",
			yamlContent: `
window:
  title: blocks
  width: 800
  height: 900
board:
  tile_size: 48
piece:
  fall_rate: 1.5
random:
  seed: 1234
assets:
  root: /srv/art
  red: tiles/red.png
log:
  level: debug
  file: tetrino.log
debug: true
`,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "blocks", cfg.Window.Title)
				assert.Equal(t, 800, cfg.Window.Width)
				assert.Equal(t, 60, cfg.Window.TPS)
				assert.Equal(t, float32(48), cfg.Board.TileSize)
				assert.Equal(t, float32(1.5), cfg.Piece.FallRate)
				assert.Equal(t, uint64(1234), cfg.Random.Seed)
				assert.Equal(t, "/srv/art", cfg.Assets.Root)
				assert.Equal(t, "tiles/red.png", cfg.Assets.Red)
				assert.Equal(t, texture.DefaultPaths().Blue, cfg.Assets.Blue)
				assert.Equal(t, "tetrino.log", cfg.Log.File)
				assert.Equal(t, 10, cfg.Log.MaxSizeMB)
				assert.True(t, cfg.Debug)
			},
		},
		{
			name:        "negative tile size",
			yamlContent: "board:\n  tile_size: -4\n",
			errContains: "tile_size",
		},
		{
			name:        "negative fall rate",
			yamlContent: "piece:\n  fall_rate: -1\n",
			errContains: "fall_rate",
		},
		{
			name:        "unknown log level",
			yamlContent: "log:\n  level: loud\n",
			errContains: "log level",
		},
		{
			name:        "malformed yaml",
			yamlContent: "window: [",
			errContains: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yamlContent))
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetrino.yaml")
	require.NoError(t, os.WriteFile(path, []byte("random:\n  seed: 7\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cfg.Random.Seed)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")
}
