package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://www.blockpalettes.com" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.OutputFormat != OutputTable {
		t.Fatalf("OutputFormat = %q", cfg.OutputFormat)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("BLOCKPALETTES_BASE_URL", "http://localhost:8080/")
	t.Setenv("BLOCKPALETTES_HTTP_TIMEOUT_SECONDS", "3")
	t.Setenv("BLOCKPALETTES_OUTPUT_FORMAT", "JSON")
	t.Setenv("BLOCKPALETTES_COLLECTION_TYPE", "none")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.OutputFormat != OutputJSON {
		t.Fatalf("OutputFormat = %q", cfg.OutputFormat)
	}
}

func TestNormalizeRejectsInvalidValues(t *testing.T) {
	valid := func() Config {
		return Config{
			BaseURL:            "https://www.blockpalettes.com",
			HTTPTimeoutSeconds: 5,
			OutputFormat:       OutputTable,
			CollectionType:     "bbolt",
			CollectionPath:     "/tmp/c.db",
		}
	}

	cases := map[string]func(*Config){
		"empty base url":     func(c *Config) { c.BaseURL = " " },
		"no scheme":          func(c *Config) { c.BaseURL = "www.blockpalettes.com" },
		"zero timeout":       func(c *Config) { c.HTTPTimeoutSeconds = 0 },
		"bad output":         func(c *Config) { c.OutputFormat = "xml" },
		"bad collection":     func(c *Config) { c.CollectionType = "redis" },
		"bbolt without path": func(c *Config) { c.CollectionPath = "" },
	}
	for name, mutate := range cases {
		cfg := valid()
		mutate(&cfg)
		if err := cfg.Normalize(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	cfg := valid()
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestHeadersSkipsEmptyValues(t *testing.T) {
	cfg := Config{UserAgent: "ua"}
	headers := cfg.Headers()
	if headers["User-Agent"] != "ua" {
		t.Fatalf("User-Agent = %q", headers["User-Agent"])
	}
	if _, ok := headers["Accept-Language"]; ok {
		t.Fatalf("empty Accept-Language should be skipped")
	}
}
