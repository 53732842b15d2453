package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stegokey.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadEmptyPathIsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	g, err := cfg.KeyGroup()
	require.NoError(t, err)
	assert.Equal(t, 9, g.Generator())
	assert.Equal(t, 23, g.Modulus())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
group:
  generator: 5
  modulus: 23
compress: true
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Group.Generator)
	assert.True(t, cfg.Compress)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4, cfg.SweepWorkers)
}

func TestLoadRejectsBadGroup(t *testing.T) {
	path := writeFile(t, "group:\n  generator: 30\n  modulus: 23\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadWorkers(t *testing.T) {
	path := writeFile(t, "sweep_workers: 0\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	path := writeFile(t, "group: [not, a, map\n")
	_, err := Load(path)
	assert.Error(t, err)
}
