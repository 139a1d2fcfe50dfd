package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the CLI configuration loaded from .env files and environment variables.
type Config struct {
	AppName            string        `mapstructure:"app_name"`
	LogLevel           string        `mapstructure:"log_level"`
	BaseURL            string        `mapstructure:"base_url"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`
	UserAgent          string        `mapstructure:"user_agent"`
	AcceptLanguage     string        `mapstructure:"accept_language"`
	OutputFormat       string        `mapstructure:"output_format"`

	CollectionType string `mapstructure:"collection_type"`
	CollectionPath string `mapstructure:"collection_path"`
}

// Output formats the CLI can render.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "blockpalettes")
	v.SetDefault("log_level", "warn")
	v.SetDefault("base_url", "https://www.blockpalettes.com")
	v.SetDefault("http_timeout_seconds", 15)
	v.SetDefault("user_agent", "blockpalettes-go/1.0")
	v.SetDefault("accept_language", "")
	v.SetDefault("output_format", OutputTable)
	v.SetDefault("collection_type", "bbolt")
	v.SetDefault("collection_path", "./data/collection.db")

	v.SetEnvPrefix("BLOCKPALETTES")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize trims values, derives durations and validates the result.
// It is called again by the CLI after flags override loaded values.
func (c *Config) Normalize() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.OutputFormat = strings.ToLower(strings.TrimSpace(c.OutputFormat))
	c.CollectionType = strings.ToLower(strings.TrimSpace(c.CollectionType))
	c.CollectionPath = strings.TrimSpace(c.CollectionPath)
	c.UserAgent = strings.TrimSpace(c.UserAgent)
	c.AcceptLanguage = strings.TrimSpace(c.AcceptLanguage)

	if c.BaseURL == "" {
		return fmt.Errorf("invalid base_url (must not be empty)")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("invalid base_url %q (must start with http:// or https://)", c.BaseURL)
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	c.HTTPTimeout = time.Duration(c.HTTPTimeoutSeconds) * time.Second

	switch c.OutputFormat {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid output_format %q (want table, json or yaml)", c.OutputFormat)
	}

	switch c.CollectionType {
	case "", "none", "disabled":
	case "bbolt":
		if c.CollectionPath == "" {
			return fmt.Errorf("collection_path is required for bbolt collections")
		}
	default:
		return fmt.Errorf("unsupported collection_type %q", c.CollectionType)
	}
	return nil
}

// Headers returns the request headers the client sends on every call.
func (c *Config) Headers() map[string]string {
	headers := make(map[string]string, 2)
	if c.UserAgent != "" {
		headers["User-Agent"] = c.UserAgent
	}
	if c.AcceptLanguage != "" {
		headers["Accept-Language"] = c.AcceptLanguage
	}
	return headers
}
