package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every XDG lookup and the working directory at temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	for _, k := range []string{EnvLogLevel, EnvLogOut, EnvDB, EnvScenario, EnvHorizon} {
		t.Setenv(k, "")
	}
	t.Chdir(root)
	return root
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 365, cfg.General.HorizonDays)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Output)
	assert.Equal(t, "flexoki-dark", cfg.Appearance.Theme)
	assert.Empty(t, cfg.Store.Path)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	root := isolate(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, Exists())
	assert.Equal(t, filepath.Join(root, "data", "moolah", "moolah.db"), cfg.DBPath())
}

func TestSaveLoad(t *testing.T) {
	isolate(t)
	cfg := DefaultConfig()
	cfg.General.HorizonDays = 90
	cfg.General.Scenario = "/tmp/household.toml"
	cfg.Appearance.Theme = "catppuccin-mocha"

	require.NoError(t, Save(cfg))
	assert.True(t, Exists())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(ConfigDir(), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("[log]\nlevel = \"debug\"\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 365, cfg.General.HorizonDays)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvLogLevel, "info")
	t.Setenv(EnvDB, "/tmp/other.db")
	t.Setenv(EnvScenario, "plan.yaml")
	t.Setenv(EnvHorizon, "30")
	t.Setenv(EnvLogOut, "~/moolah.log")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "~/moolah.log", cfg.Log.Output)
	assert.Equal(t, "/tmp/other.db", cfg.DBPath())
	assert.Equal(t, "plan.yaml", cfg.General.Scenario)
	assert.Equal(t, 30, cfg.General.HorizonDays)

	t.Setenv(EnvHorizon, "soon")
	_, err = Load()
	assert.ErrorContains(t, err, EnvHorizon)
}

func TestLoad_DotEnv(t *testing.T) {
	root := isolate(t)
	require.NoError(t, os.Unsetenv(EnvScenario))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte(EnvScenario+"=from-dotenv.toml\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.toml", cfg.General.Scenario)
}
