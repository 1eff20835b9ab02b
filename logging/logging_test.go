package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/tetrino/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{LogConfig: config.LogConfig{Level: "info"}, Console: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Named("redraw").Info("written", zap.Int("tiles", 200))
	closeFn()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "redraw")
	assert.Contains(t, out, "tiles")
	assert.Contains(t, out, "INFO")
}

func TestRollingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tetrino.log")
	logger, closeFn, err := New(Options{LogConfig: config.LogConfig{Level: "debug", File: path, MaxSizeMB: 1, MaxBackups: 1}})
	require.NoError(t, err)

	logger.Debug("spawned piece", zap.String("color", "red"))
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"color":"red"`)
}

func TestBadLevel(t *testing.T) {
	_, _, err := New(Options{LogConfig: config.LogConfig{Level: "verbose"}})
	assert.Error(t, err)
}
