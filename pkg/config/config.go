package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

const (
	ConfigDirName  = ".sitesmith"
	ConfigFileName = "config.json"
)

// Config represents the application configuration. Values from the config
// file are overridden by environment variables so CI and one-off runs can
// redirect the provider without touching the file.
type Config struct {
	// Provider and model configuration
	Model   string `json:"model"`
	BaseURL string `json:"base_url,omitempty"`
	APIKey  string `json:"-"` // never persisted

	// Generation behavior
	Temperature    float64 `json:"temperature,omitempty"`
	MaxTokens      int     `json:"max_tokens,omitempty"`
	RequestTimeout int     `json:"request_timeout_seconds,omitempty"`
	MaxRetries     int     `json:"max_retries,omitempty"`

	// ForceBilingual makes every generated site bilingual regardless of the
	// detected language mode. Off by default; detection stays authoritative.
	ForceBilingual bool `json:"force_bilingual,omitempty"`

	// Preview server
	ServeAddr string `json:"serve_addr,omitempty"`
}

// Default returns the baseline configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Model:          "gpt-4o-mini",
		BaseURL:        "https://api.openai.com/v1",
		Temperature:    0.4,
		MaxTokens:      8192,
		RequestTimeout: 45,
		MaxRetries:     2,
		ServeAddr:      "127.0.0.1:8917",
	}
}

// Load reads the configuration from .sitesmith/config.json in the working
// directory, falling back to defaults when the file is missing or invalid,
// then applies environment overrides. Load never fails hard: a generation
// should not abort because a config file is malformed.
func Load() *Config {
	cfg := Default()
	path := filepath.Join(ConfigDirName, ConfigFileName)
	if data, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(data, cfg)
	}
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SITESMITH_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("SITESMITH_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("SITESMITH_API_KEY"); v != "" {
		c.APIKey = v
	} else if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("SITESMITH_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RequestTimeout = n
		}
	}
	if v := os.Getenv("SITESMITH_FORCE_BILINGUAL"); v == "1" || v == "true" {
		c.ForceBilingual = true
	}
}

// Save writes the configuration file, creating the state directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(ConfigDirName, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(ConfigDirName, ConfigFileName), data, 0644)
}
