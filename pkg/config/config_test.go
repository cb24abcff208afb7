package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/gitmeta/pkg/config"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, config.DefaultStorePath, cfg.Store.Path)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"logging:\n  level: DEBUG\nstore:\n  path: .metadata.db\n",
	), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, ".metadata.db", cfg.Store.Path)
	// Unset keys still get defaults.
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_InvalidLevelRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: LOUD\n"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestLoad_ExpandsEnvInPaths(t *testing.T) {
	t.Setenv("GITMETA_TEST_DIR", "/tmp/gitmeta-test")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"logging:\n  output: $GITMETA_TEST_DIR/gitmeta.log\n",
	), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/gitmeta-test/gitmeta.log", cfg.Logging.Output)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = "WARN"
	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "WARN", loaded.Logging.Level)
	assert.Equal(t, cfg.Store.Path, loaded.Store.Path)
}

func TestValidate(t *testing.T) {
	t.Run("DefaultsAreValid", func(t *testing.T) {
		require.NoError(t, config.Validate(config.GetDefaultConfig()))
	})

	t.Run("EmptyStorePathRejected", func(t *testing.T) {
		cfg := config.GetDefaultConfig()
		cfg.Store.Path = ""
		require.Error(t, config.Validate(cfg))
	})

	t.Run("BadFormatRejected", func(t *testing.T) {
		cfg := config.GetDefaultConfig()
		cfg.Logging.Format = "xml"
		require.Error(t, config.Validate(cfg))
	})
}
