package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("SERVER_ADDRESS", "")
	t.Setenv("EXPORT_DIR", "")
	t.Setenv("ENABLE_TLS", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, defaultServerAddress, cfg.ServerAddress)
	assert.Equal(t, dir, cfg.ConfigDir)
	assert.Equal(t, defaultExportDir, cfg.ExportDir)
	assert.False(t, cfg.EnableTLS)
	assert.Equal(t, filepath.Join(dir, "token"), cfg.TokenPath)
	assert.Equal(t, filepath.Join(dir, "cards.db"), cfg.DataPath)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("SERVER_ADDRESS", "")

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_address: cards.example.org\nenable_tls: true\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "cards.example.org", cfg.ServerAddress)
	assert.True(t, cfg.EnableTLS)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("SERVER_ADDRESS", "env.example.org:9000")

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_address: file.example.org\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env.example.org:9000", cfg.ServerAddress)
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("SERVER_ADDRESS", "")
	t.Setenv("EXPORT_DIR", "")

	cfg := &Config{Env: "dev", ServerAddress: "saved.example.org", ConfigDir: dir, ExportDir: filepath.Join(dir, "out")}
	require.NoError(t, cfg.EnsureDirs())

	path, err := cfg.Save()
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.DirExists(t, cfg.ExportDir)

	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "saved.example.org", loaded.ServerAddress)
	assert.Equal(t, cfg.ExportDir, loaded.ExportDir)
}
