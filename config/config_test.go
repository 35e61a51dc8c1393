package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Nina: NinaConfig{
			URL:          "https://api.ninaprotocol.com",
			Timeout:      30 * time.Second,
			DefaultLimit: 20,
			Concurrency:  5,
		},
		Output:  OutputConfig{Format: "console"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Update:  UpdateConfig{Repository: "s0up4200/nina"},
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.ninaprotocol.com", cfg.Nina.URL)
	assert.Equal(t, 30*time.Second, cfg.Nina.Timeout)
	assert.Equal(t, 20, cfg.Nina.DefaultLimit)
	assert.Equal(t, 5, cfg.Nina.Concurrency)
	assert.Equal(t, "console", cfg.Output.Format)
	assert.True(t, cfg.Output.ShowDetails)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "s0up4200/nina", cfg.Update.Repository)
	assert.Empty(t, cfg.Filter.Presets)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
nina:
  url: http://localhost:8080
  timeout: 5s
  default_limit: 50
output:
  format: json
logging:
  level: debug
filter:
  presets:
    recent: "daysSince(Published) < 30"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Nina.URL)
	assert.Equal(t, 5*time.Second, cfg.Nina.Timeout)
	assert.Equal(t, 50, cfg.Nina.DefaultLimit)
	assert.Equal(t, 5, cfg.Nina.Concurrency)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, map[string]string{"recent": "daysSince(Published) < 30"}, cfg.Filter.Presets)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "nina:\n  url: http://localhost:8080\n")
	t.Setenv("NINA_NINA_URL", "https://staging.example.com")
	t.Setenv("NINA_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.example.com", cfg.Nina.URL)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			modify: func(*Config) {},
		},
		{
			name:    "missing url",
			modify:  func(c *Config) { c.Nina.URL = "" },
			wantErr: "nina.url is required",
		},
		{
			name:    "relative url",
			modify:  func(c *Config) { c.Nina.URL = "api.ninaprotocol.com" },
			wantErr: "nina.url",
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.Nina.Timeout = 0 },
			wantErr: "nina.timeout",
		},
		{
			name:    "zero default limit",
			modify:  func(c *Config) { c.Nina.DefaultLimit = 0 },
			wantErr: "nina.default_limit",
		},
		{
			name:    "negative concurrency",
			modify:  func(c *Config) { c.Nina.Concurrency = -1 },
			wantErr: "nina.concurrency",
		},
		{
			name:    "unknown output format",
			modify:  func(c *Config) { c.Output.Format = "yaml" },
			wantErr: "output.format",
		},
		{
			name:    "unknown logging level",
			modify:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "logging.level",
		},
		{
			name:    "unknown logging format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
		{
			name:    "malformed repository",
			modify:  func(c *Config) { c.Update.Repository = "nina" },
			wantErr: "update.repository",
		},
		{
			name:    "empty preset",
			modify:  func(c *Config) { c.Filter.Presets = map[string]string{"blank": " "} },
			wantErr: "filter.presets.blank",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
