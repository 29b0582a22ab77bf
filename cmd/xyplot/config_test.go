package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "xyplot.yml")
	err = os.WriteFile(path, []byte(`
port: /dev/ttyACM1
pattern: hilbert
feed_rate: 45
idle_timeout_ms: 30000
rendezvous:
  identity: BENCH
`), 0600)
	assert.NoError(t, err)

	cfg, err = loadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM1", cfg.Port)
	assert.Equal(t, "hilbert", cfg.Pattern)
	assert.Equal(t, 45.0, cfg.FeedRate)
	assert.Equal(t, 30000, cfg.IdleTimeoutMs)
	assert.Equal(t, "BENCH", cfg.Rendezvous.Identity)
	// untouched fields keep their defaults
	assert.Equal(t, 115200, cfg.Baud)
	assert.Equal(t, 1250.0, cfg.Width)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := defaultConfig()
	applyFlagOverrides(&cfg, "COM4", 0, "", "radial_spokes", 0, 250, 0, 0, 0, 0, true)

	assert.Equal(t, "COM4", cfg.Port)
	assert.Equal(t, 115200, cfg.Baud)
	assert.Equal(t, "radial_spokes", cfg.Pattern)
	assert.Equal(t, 250, cfg.DwellMs)
	assert.True(t, cfg.NoWait)
}
