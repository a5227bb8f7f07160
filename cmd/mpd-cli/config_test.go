package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
host = "music.lan"
port = "6601"
timeout = "3s"

[log]
level = "debug"
format = "json"
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "music.lan", cfg.Host)
	assert.Equal(t, "6601", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.Timeout.Duration)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadConfig_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "mpd-cli"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mpd-cli", "config.toml"), []byte(`host = "xdg"`), 0o600))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "xdg", cfg.Host)
}

func TestLoadConfig_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`timeout = "soon"`), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestResolve(t *testing.T) {
	t.Setenv("MPD_TEST_HOST", "env")

	assert.Equal(t, "flag", resolve("flag", "MPD_TEST_HOST", "cfg", "def"))
	assert.Equal(t, "env", resolve("", "MPD_TEST_HOST", "cfg", "def"))
	assert.Equal(t, "cfg", resolve("", "MPD_TEST_UNSET", "cfg", "def"))
	assert.Equal(t, "def", resolve("", "MPD_TEST_UNSET", "", "def"))
}
