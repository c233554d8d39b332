package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "jellyfin.db", cfg.Jellyfin.UsersFile)
	assert.Equal(t, "library.db", cfg.Jellyfin.LibraryFile)
	assert.Equal(t, 5000, cfg.Jellyfin.BusyTimeoutMS)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("JELLYFIN_USERS_FILE", "users.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "users.db", cfg.Jellyfin.UsersFile)
	assert.Equal(t, "debug", cfg.Log.Level)
}
