package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"POSTFEED_BASE_URL", "POSTFEED_CONNECT_TIMEOUT", "POSTFEED_REQUEST_TIMEOUT",
		"POSTFEED_REPORT_TIMEOUT", "POSTFEED_MAX_CONCURRENCY", "POSTFEED_ADDR",
		"POSTFEED_DB", "POSTFEED_LOG_LEVEL", "POSTFEED_LOG_BODIES",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://127.0.0.1:9999", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.GetConnectTimeout())
	assert.Equal(t, time.Duration(0), cfg.GetRequestTimeout())
	assert.Equal(t, 30*time.Second, cfg.GetReportTimeout())
	assert.Equal(t, 0, cfg.Report.MaxConcurrency)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigSaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "postfeed.yaml")

	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://localhost:8080"
	cfg.Report.MaxConcurrency = 4
	cfg.Logging.LogBodies = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", loaded.API.BaseURL)
	assert.Equal(t, 4, loaded.Report.MaxConcurrency)
	assert.True(t, loaded.Logging.LogBodies)
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "postfeed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfigEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTFEED_BASE_URL", "http://api.internal:9000")
	t.Setenv("POSTFEED_MAX_CONCURRENCY", "8")
	t.Setenv("POSTFEED_REPORT_TIMEOUT", "5s")
	t.Setenv("POSTFEED_LOG_BODIES", "true")
	t.Setenv("POSTFEED_DB", "/tmp/postfeed")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://api.internal:9000", cfg.API.BaseURL)
	assert.Equal(t, 8, cfg.Report.MaxConcurrency)
	assert.Equal(t, 5*time.Second, cfg.GetReportTimeout())
	assert.True(t, cfg.Logging.LogBodies)
	assert.Equal(t, "/tmp/postfeed", cfg.Server.DBPath)
}

func TestLoadRejectsInvalidEnvValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"POSTFEED_MAX_CONCURRENCY", "many"},
		{"POSTFEED_LOG_BODIES", "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, os.WriteFile(".env", []byte("POSTFEED_ADDR=127.0.0.1:7777\n"), 0644))
	// t.Setenv above registered cleanup for the key, so the value loaded
	// from the file does not leak into other tests.
	require.NoError(t, os.Unsetenv("POSTFEED_ADDR"))

	cfg, err := Load("missing.yaml")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7777", cfg.Server.Addr)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://127.0.0.1" }},
		{"missing host", func(c *Config) { c.API.BaseURL = "http://" }},
		{"bad duration", func(c *Config) { c.API.ConnectTimeout = "soon" }},
		{"negative duration", func(c *Config) { c.Report.Timeout = "-1s" }},
		{"negative concurrency", func(c *Config) { c.Report.MaxConcurrency = -1 }},
		{"unknown level", func(c *Config) { c.Logging.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
