package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err, "a missing config file is not an error")

	assert.Equal(t, "https://api.github.com", cfg.API.BaseURL)
	assert.Equal(t, 4*time.Hour, time.Duration(cfg.Cache.NetworkWindow))
	assert.Equal(t, 7*24*time.Hour, time.Duration(cfg.Cache.AnalysisWindow))
	assert.Equal(t, 8, cfg.Enrich.Concurrency)
	assert.Equal(t, 8420, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
username: alice
cache:
  network_window: 30m
  analysis_window: 48h
enrich:
  concurrency: 2
server:
  port: 9000
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.Username)
	assert.Equal(t, 30*time.Minute, time.Duration(cfg.Cache.NetworkWindow))
	assert.Equal(t, 48*time.Hour, time.Duration(cfg.Cache.AnalysisWindow))
	assert.Equal(t, 2, cfg.Enrich.Concurrency)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "username: from-file\n")
	t.Setenv("FOLIO_USERNAME", "from-env")
	t.Setenv("FOLIO_GITHUB_TOKEN", "tok123")
	t.Setenv("FOLIO_API_BASE_URL", "http://localhost:9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Username)
	assert.Equal(t, "tok123", cfg.API.Token)
	assert.Equal(t, "http://localhost:9999", cfg.API.BaseURL)
}

func TestLoad_TokenNeverFromYAML(t *testing.T) {
	path := writeConfig(t, "api:\n  token: leaked\n")
	t.Setenv("FOLIO_GITHUB_TOKEN", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.API.Token, "token only comes from the environment")
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfig(t, "cache:\n  network_window: soon\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"zero concurrency", "enrich:\n  concurrency: 0\n"},
		{"negative window", "cache:\n  network_window: -1h\n"},
		{"port out of range", "server:\n  port: 70000\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestDuration_MarshalRoundTrip(t *testing.T) {
	d := Duration(90 * time.Minute)
	out, err := d.MarshalYAML()
	require.NoError(t, err)
	assert.Equal(t, "1h30m0s", out)
}
