package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported values for log_level and log_format.
var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"console", "text", "json"}
)

type Config struct {
	PrimaryBranch  string        `mapstructure:"primary_branch"`
	UpstreamRemote string        `mapstructure:"upstream_remote"`
	OriginRemote   string        `mapstructure:"origin_remote"`
	GitBinary      string        `mapstructure:"git_binary"`
	LogLevel       string        `mapstructure:"log_level"`
	LogFormat      string        `mapstructure:"log_format"`
	JournalDir     string        `mapstructure:"journal_dir"`
	LockTimeout    time.Duration `mapstructure:"lock_timeout"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		PrimaryBranch:  "master",
		UpstreamRemote: "upstream",
		OriginRemote:   "origin",
		GitBinary:      "git",
		LogLevel:       "info",
		LogFormat:      "console",
		LockTimeout:    30 * time.Second,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := ValidateBranchName(c.PrimaryBranch); err != nil {
		return fmt.Errorf("invalid primary_branch: %w", err)
	}
	if err := ValidateRemoteName(c.UpstreamRemote); err != nil {
		return fmt.Errorf("invalid upstream_remote: %w", err)
	}
	if err := ValidateRemoteName(c.OriginRemote); err != nil {
		return fmt.Errorf("invalid origin_remote: %w", err)
	}
	if strings.TrimSpace(c.GitBinary) == "" {
		return fmt.Errorf("git_binary cannot be empty")
	}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log_level %q (expected one of %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if !contains(validLogFormats, strings.ToLower(c.LogFormat)) {
		return fmt.Errorf("invalid log_format %q (expected one of %s)", c.LogFormat, strings.Join(validLogFormats, ", "))
	}
	if c.LockTimeout <= 0 {
		return fmt.Errorf("lock_timeout must be positive, got %s", c.LockTimeout)
	}
	if strings.Contains(c.JournalDir, "..") {
		return fmt.Errorf("journal_dir contains invalid path traversal")
	}
	return nil
}

// JournalEnabled reports whether runs should be journaled.
func (c *Config) JournalEnabled() bool {
	return c.JournalDir != ""
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// LoadConfig reads .rebase-sync.yaml from the current directory or $HOME,
// overlaid with REBASE_SYNC_* environment variables.
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), ".", "$HOME")
}

func loadConfig(v *viper.Viper, paths ...string) (*Config, error) {
	v.SetConfigName(".rebase-sync")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix("REBASE_SYNC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	defaults := DefaultConfig()
	bindings := map[string]any{
		"primary_branch":  defaults.PrimaryBranch,
		"upstream_remote": defaults.UpstreamRemote,
		"origin_remote":   defaults.OriginRemote,
		"git_binary":      defaults.GitBinary,
		"log_level":       defaults.LogLevel,
		"log_format":      defaults.LogFormat,
		"journal_dir":     defaults.JournalDir,
		"lock_timeout":    defaults.LockTimeout,
	}
	for key, value := range bindings {
		if err := v.BindEnv(key, "REBASE_SYNC_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
		v.SetDefault(key, value)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}
