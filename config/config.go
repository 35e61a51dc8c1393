package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variable overrides, e.g. NINA_NINA_URL
const EnvPrefix = "NINA"

// Load loads the configuration. An explicit configPath must exist; without
// one the standard locations are searched and defaults are used when no
// file is found.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".nina"))
		}

		v.AddConfigPath("/etc/nina/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Nina defaults
	v.SetDefault("nina.url", "https://api.ninaprotocol.com")
	v.SetDefault("nina.timeout", 30*time.Second)
	v.SetDefault("nina.default_limit", 20)
	v.SetDefault("nina.concurrency", 5)
	v.SetDefault("nina.user_agent", "")

	// Output defaults
	v.SetDefault("output.format", "console")
	v.SetDefault("output.show_details", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	v.SetDefault("update.repository", "s0up4200/nina")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Nina.URL == "" {
		return fmt.Errorf("nina.url is required")
	}
	if u, err := url.Parse(cfg.Nina.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("nina.url must be an absolute URL: %s", cfg.Nina.URL)
	}

	if cfg.Nina.Timeout <= 0 {
		return fmt.Errorf("nina.timeout must be positive: %s", cfg.Nina.Timeout)
	}
	if cfg.Nina.DefaultLimit <= 0 {
		return fmt.Errorf("nina.default_limit must be positive: %d", cfg.Nina.DefaultLimit)
	}
	if cfg.Nina.Concurrency <= 0 {
		return fmt.Errorf("nina.concurrency must be positive: %d", cfg.Nina.Concurrency)
	}

	validOutputs := map[string]bool{
		"console": true,
		"json":    true,
		"table":   true,
	}
	if !validOutputs[cfg.Output.Format] {
		return fmt.Errorf("invalid output.format: %s (must be 'console', 'json' or 'table')", cfg.Output.Format)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging.level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging.format: %s", cfg.Logging.Format)
	}

	if repo := cfg.Update.Repository; repo != "" && strings.Count(repo, "/") != 1 {
		return fmt.Errorf("invalid update.repository: %s (must be 'owner/repo')", repo)
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter.presets.%s is empty", name)
		}
	}

	return nil
}
