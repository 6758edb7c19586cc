package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "prod", cfg.App.Mode)
	assert.Equal(t, "", cfg.Schema.CategoriesFile)
	assert.Equal(t, "data/cashsense.db", cfg.Database.Path)
	assert.Equal(t, 30, cfg.Demo.Days)
	assert.Equal(t, 15, cfg.Demo.MinPerMonth)
	assert.Equal(t, 128, cfg.Demo.CacheSize)
	assert.Equal(t, 60, cfg.Demo.CacheTTL)
}

func TestInitializeConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	content := `log:
  level: debug
  format: json
app:
  mode: demo
demo:
  days: 90
  min_per_month: 20
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "demo", cfg.App.Mode)
	assert.Equal(t, 90, cfg.Demo.Days)
	assert.Equal(t, 20, cfg.Demo.MinPerMonth)
}

func TestInitializeConfigEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CASHSENSE_LOG_LEVEL", "warn")
	t.Setenv("CASHSENSE_APP_MODE", "demo")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "demo", cfg.App.Mode)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Log.Level = "info"
		cfg.Log.Format = "text"
		cfg.App.Mode = "prod"
		cfg.Demo.Days = 30
		cfg.Demo.MinPerMonth = 15
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"bad app mode", func(c *Config) { c.App.Mode = "staging" }, "invalid app mode"},
		{"zero demo days", func(c *Config) { c.Demo.Days = 0 }, "demo.days must be positive"},
		{"negative min per month", func(c *Config) { c.Demo.MinPerMonth = -1 }, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestConfigureLogging(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLogging(cfg)

	assert.Equal(t, logrus.DebugLevel, logger.Level)
	_, ok := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CASHSENSE_TEST_KEY", "set")

	assert.Equal(t, "set", GetEnv("CASHSENSE_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("CASHSENSE_TEST_KEY_MISSING", "fallback"))
}
