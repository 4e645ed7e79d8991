// Package config loads folio configuration with precedence:
// defaults → YAML file → environment variables. The returned Config is
// read-only after Load and safe for concurrent reads.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Username string       `yaml:"username"`
	API      APIConfig    `yaml:"api"`
	Cache    CacheConfig  `yaml:"cache"`
	Enrich   EnrichConfig `yaml:"enrich"`
	Server   ServerConfig `yaml:"server"`
	Log      LogConfig    `yaml:"log"`
}

// APIConfig contains source API settings.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"-"` // env-only, never in YAML
}

// CacheConfig contains cache store settings and freshness windows.
type CacheConfig struct {
	Path           string   `yaml:"path"`
	NetworkWindow  Duration `yaml:"network_window"`
	AnalysisWindow Duration `yaml:"analysis_window"`
}

// EnrichConfig contains enrichment fan-out settings.
type EnrichConfig struct {
	// Concurrency bounds in-flight per-repository enrichment tasks to
	// avoid remote rate-limit exhaustion.
	Concurrency int `yaml:"concurrency"`
}

// ServerConfig contains local JSON API settings.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Duration is a wrapper around time.Duration that supports YAML string parsing.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// DefaultPath returns the default config file location: ~/.folio/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".folio", "config.yaml")
}

// Load reads configuration from path (DefaultPath when empty). A missing
// file is not an error; defaults apply. FOLIO_GITHUB_TOKEN always comes
// from the environment.
func Load(path string) (*Config, error) {
	cfg := newDefaults()

	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newDefaults returns a Config with all default values.
func newDefaults() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		API: APIConfig{
			BaseURL: "https://api.github.com",
		},
		Cache: CacheConfig{
			Path:           filepath.Join(home, ".folio", "folio.db"),
			NetworkWindow:  Duration(4 * time.Hour),
			AnalysisWindow: Duration(7 * 24 * time.Hour),
		},
		Enrich: EnrichConfig{
			Concurrency: 8,
		},
		Server: ServerConfig{
			Port:            8420,
			ShutdownTimeout: Duration(5 * time.Second),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyEnvOverrides applies environment variable overrides.
// Only non-empty env vars override config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FOLIO_GITHUB_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := os.Getenv("FOLIO_USERNAME"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("FOLIO_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
}

// validate checks invariants that would break at runtime.
func (c *Config) validate() error {
	if c.Enrich.Concurrency < 1 {
		return fmt.Errorf("enrich.concurrency must be at least 1, got %d", c.Enrich.Concurrency)
	}
	if c.Cache.NetworkWindow <= 0 {
		return fmt.Errorf("cache.network_window must be positive")
	}
	if c.Cache.AnalysisWindow <= 0 {
		return fmt.Errorf("cache.analysis_window must be positive")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}
