package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, "Responder", cfg.App.Name)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "questions.json", cfg.Storage.Path)
	assert.False(t, cfg.Storage.CreateIfMissing)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, time.Minute, cfg.Security.RateLimitWindow)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.GetAddr())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("STORAGE_PATH", "/tmp/answers.json")
	t.Setenv("STORAGE_CREATE_IF_MISSING", "true")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("APP_ENVIRONMENT", "production")

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "/tmp/answers.json", cfg.Storage.Path)
	assert.True(t, cfg.Storage.CreateIfMissing)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.True(t, cfg.App.IsProduction())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "responder.yaml")
	content := []byte(`
server:
  port: 4000
  request_timeout: 5s
storage:
  path: data/questions.json
logger:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "data/questions.json", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Logger.Level)

	t.Run("environment wins over file", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "5000")
		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 5000, cfg.Server.Port)
	})
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 3000},
			Storage:  StorageConfig{Path: "questions.json"},
			Logger:   LoggerConfig{Format: "json", Output: "stdout"},
			Security: SecurityConfig{RateLimitRequests: 10},
		}
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty storage path", mutate: func(c *Config) { c.Storage.Path = "" }},
		{name: "port too low", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "port too high", mutate: func(c *Config) { c.Server.Port = 70000 }},
		{name: "zero rate limit", mutate: func(c *Config) { c.Security.RateLimitRequests = 0 }},
		{name: "unknown log format", mutate: func(c *Config) { c.Logger.Format = "xml" }},
		{name: "file output without filename", mutate: func(c *Config) { c.Logger.Output = "file" }},
	}

	require.NoError(t, validateConfig(valid()))

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}
