package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesFileValuesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
tracking:
  trajectory_capacity: 120
  confirm_threshold: 5
snapshots:
  dir: /tmp/snaps
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Tracking.TrajectoryCapacity)
	assert.Equal(t, uint64(5), cfg.Tracking.ConfirmThreshold)
	assert.Equal(t, "/tmp/snaps", cfg.Snapshots.Dir)

	// Unset fields fall back to defaults
	assert.Equal(t, "disk", cfg.Snapshots.Backend)
	assert.Equal(t, 85, cfg.Snapshots.Quality)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TRACKAGG_SNAPSHOTS_DIR", "/var/lib/trackagg")
	t.Setenv("TRACKAGG_CONFIRM_THRESHOLD", "25")

	path := writeConfig(t, `
snapshots:
  dir: /tmp/snaps
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/trackagg", cfg.Snapshots.Dir)
	assert.Equal(t, uint64(25), cfg.Tracking.ConfirmThreshold)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("negative trajectory capacity", func(t *testing.T) {
		path := writeConfig(t, `
tracking:
  trajectory_capacity: -3
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("unknown snapshot backend", func(t *testing.T) {
		path := writeConfig(t, `
snapshots:
  backend: ftp
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("minio backend without endpoint", func(t *testing.T) {
		path := writeConfig(t, `
snapshots:
  backend: minio
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("quality out of range", func(t *testing.T) {
		path := writeConfig(t, `
snapshots:
  quality: 250
`)
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 90, cfg.Tracking.TrajectoryCapacity)
	assert.Equal(t, uint64(10), cfg.Tracking.ConfirmThreshold)
	assert.Zero(t, cfg.Tracking.SmoothingTimeStep)
}
