// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables for keys without an explicit binding.
const EnvPrefix = "CAREER_COMPASS"

// Config keys
const (
	KeyGeminiAPIKey       = "gemini_api_key"
	KeyModel              = "model"
	KeyThinkingBudget     = "thinking_budget"
	KeyMaxSources         = "max_sources"
	KeyMaxAttempts        = "max_attempts"
	KeyRequestTimeout     = "request_timeout"
	KeyLogLevel           = "log_level"
	KeyLogFormat          = "log_format"
	KeyPort               = "port"
	KeyRateLimitEnabled   = "rate_limit_enabled"
	KeyRateLimitPerHour   = "rate_limit_per_hour"
	KeyRateLimitBurst     = "rate_limit_burst"
	KeyJWTSecret          = "jwt_secret"
	KeyJWTExpirationHours = "jwt_expiration_hours"
)

// Upper bounds accepted by Validate.
const (
	MaxThinkingBudget = 32768
	MaxAttemptsLimit  = 10
)

// Config holds every setting. Values come from, lowest to highest precedence:
// defaults, an optional config file, environment variables, then bound CLI flags.
type Config struct {
	// Reasoning service
	GeminiAPIKey   string        `mapstructure:"gemini_api_key"`
	Model          string        `mapstructure:"model"`
	ThinkingBudget int           `mapstructure:"thinking_budget"` // 0 means the requester default
	MaxSources     int           `mapstructure:"max_sources"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"` // 0 means no timeout

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Server
	Port               int    `mapstructure:"port"`
	RateLimitEnabled   bool   `mapstructure:"rate_limit_enabled"`
	RateLimitPerHour   int    `mapstructure:"rate_limit_per_hour"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
	JWTSecret          string `mapstructure:"jwt_secret"` // empty disables auth
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`
}

// New returns a viper instance with defaults and environment bindings set.
// Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyModel, "gemini-3-pro-preview")
	v.SetDefault(KeyThinkingBudget, 2048)
	v.SetDefault(KeyMaxSources, 8)
	v.SetDefault(KeyMaxAttempts, 1)
	v.SetDefault(KeyRequestTimeout, time.Duration(0))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyPort, 8080)
	v.SetDefault(KeyRateLimitEnabled, true)
	v.SetDefault(KeyRateLimitPerHour, 10)
	v.SetDefault(KeyRateLimitBurst, 2)
	v.SetDefault(KeyJWTSecret, "")
	v.SetDefault(KeyJWTExpirationHours, 24)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Well-known names take precedence over the prefixed form, in order.
	_ = v.BindEnv(KeyGeminiAPIKey, "GEMINI_API_KEY", "API_KEY", EnvPrefix+"_GEMINI_API_KEY")
	_ = v.BindEnv(KeyPort, "PORT", EnvPrefix+"_PORT")
	_ = v.BindEnv(KeyJWTSecret, "JWT_SECRET", EnvPrefix+"_JWT_SECRET")
	_ = v.BindEnv(KeyJWTExpirationHours, "JWT_EXPIRATION_HOURS", EnvPrefix+"_JWT_EXPIRATION_HOURS")
	_ = v.BindEnv(KeyLogLevel, "LOG_LEVEL", EnvPrefix+"_LOG_LEVEL")

	return v
}

// Load reads the optional config file at path (json or yaml, chosen by
// extension) into v and decodes the merged result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.GeminiAPIKey = strings.TrimSpace(cfg.GeminiAPIKey)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values. A missing API key
// is not an error here; it is reported when a request is submitted.
func (c *Config) Validate() error {
	var errs []error

	nonNegative := map[string]int{
		KeyThinkingBudget:     c.ThinkingBudget,
		KeyMaxAttempts:        c.MaxAttempts,
		KeyPort:               c.Port,
		KeyRateLimitPerHour:   c.RateLimitPerHour,
		KeyRateLimitBurst:     c.RateLimitBurst,
		KeyJWTExpirationHours: c.JWTExpirationHours,
	}
	for _, key := range []string{
		KeyThinkingBudget, KeyMaxAttempts, KeyPort,
		KeyRateLimitPerHour, KeyRateLimitBurst, KeyJWTExpirationHours,
	} {
		if nonNegative[key] < 0 {
			errs = append(errs, fmt.Errorf("config error: '%s' must be non-negative", key))
		}
	}

	if c.ThinkingBudget > MaxThinkingBudget {
		errs = append(errs, fmt.Errorf("config error: '%s' must be at most %d", KeyThinkingBudget, MaxThinkingBudget))
	}
	if c.MaxAttempts > MaxAttemptsLimit {
		errs = append(errs, fmt.Errorf("config error: '%s' must be at most %d", KeyMaxAttempts, MaxAttemptsLimit))
	}
	if c.MaxSources < 1 {
		errs = append(errs, fmt.Errorf("config error: '%s' must be at least 1", KeyMaxSources))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("config error: '%s' must be non-negative", KeyRequestTimeout))
	}
	if c.Port > 65535 {
		errs = append(errs, fmt.Errorf("config error: '%s' must be a valid TCP port", KeyPort))
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("config error: '%s' must be json or console", KeyLogFormat))
	}

	return errors.Join(errs...)
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
