package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tusshar172004/Code-Pod/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "0.0.0.0:5000", cfg.Addr())
	assert.Equal(t, int64(1048576), cfg.WSMaxMessageSize)
	assert.Equal(t, 15*time.Second, cfg.CompileTimeout)
	assert.False(t, cfg.EnableSnapshotArchive)
	assert.Equal(t, "https://api.jdoodle.com/v1/execute", cfg.CompileAPIURL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9100")
	t.Setenv("COMPILE_TIMEOUT_SECONDS", "5")
	t.Setenv("ENABLE_SNAPSHOT_ARCHIVE", "true")
	t.Setenv("DB_DATABASE", "pods")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.CompileTimeout)
	assert.True(t, cfg.EnableSnapshotArchive)
	assert.Contains(t, cfg.DSN(), "dbname=pods")
	assert.Contains(t, cfg.DatabaseURL(), "/pods?sslmode=disable")
}

func TestValidate(t *testing.T) {
	t.Run("defaults pass", func(t *testing.T) {
		cfg, err := config.Load()
		require.NoError(t, err)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("production requires compile credentials", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Error(t, cfg.Validate())

		t.Setenv("COMPILE_CLIENT_ID", "id")
		cfg, err = config.Load()
		require.NoError(t, err)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("archive requires database settings", func(t *testing.T) {
		t.Setenv("ENABLE_SNAPSHOT_ARCHIVE", "true")
		t.Setenv("DB_HOST", "")
		cfg, err := config.Load()
		require.NoError(t, err)

		// Empty DB_HOST falls back to the default, so force the struct field.
		cfg.DB.Host = ""
		assert.Error(t, cfg.Validate())
	})
}
