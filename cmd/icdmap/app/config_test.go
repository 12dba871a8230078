package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/icdmap/pkg/constants"
)

// TestLoadConfig verifies defaults when no config file or env is present.
func TestLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultLayout, config.Layout)
	assert.Equal(t, constants.DefaultNodeColor, config.DefaultColor)
	assert.Equal(t, constants.DefaultPalette, config.Palette)
	assert.Equal(t, constants.DefaultSubsystemPrefixes, config.SubsystemPrefixes)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
}

func TestConfigEnvironmentVariables(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ICDMAP_MODELS", "/models")
	t.Setenv("ICDMAP_LAYOUT", "fdp")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/models", config.Models)
	assert.Equal(t, "fdp", config.Layout)
	assert.Equal(t, "debug", config.EnvLogLevel)
	assert.Empty(t, config.LogLevel)
}

func TestConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".icdmap.yaml"), []byte(`
db: /data/icds.db
palette:
  aps: gold
subsystem_prefixes:
  iris: ao.iris
`), 0o644))

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/data/icds.db", config.DB)
	assert.Equal(t, map[string]string{"aps": "gold"}, config.Palette)
	assert.Equal(t, map[string]string{"IRIS": "ao.iris"}, config.SubsystemPrefixes)
	assert.Equal(t, filepath.Join(home, ".icdmap.yaml"), config.ConfigFile)
}

func TestConfigReadFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models: /tree\nlayout: neato\n"), 0o644))

	config, err := LoadConfig()
	require.NoError(t, err)
	config.UpdateFromFlags(true, false, false, "json", "")

	require.NoError(t, config.ReadFile(path))
	assert.Equal(t, "/tree", config.Models)
	assert.Equal(t, "neato", config.Layout)
	assert.True(t, config.Verbose)
	assert.Equal(t, "json", config.Format)

	assert.Error(t, config.ReadFile(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestUpdateFromFlagsKeepsFormat(t *testing.T) {
	config := &Config{Format: "yaml"}
	config.UpdateFromFlags(false, true, true, "", "warn")
	assert.Equal(t, "yaml", config.Format)
	assert.True(t, config.Quiet)
	assert.True(t, config.NoColor)
	assert.Equal(t, "warn", config.LogLevel)
}
