package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const envPrefix = "CAPALINKS"

type APIConfig struct {
	IDListURL  string `yaml:"id_list_url"`
	QueryURL   string `yaml:"query_url"`
	AppVersion string `yaml:"app_version"`
	Referer    string `yaml:"referer"`
	UserAgent  string `yaml:"user_agent"`
}

type Config struct {
	DatabaseID      string    `yaml:"database_id"`
	Output          string    `yaml:"output"`
	Timeout         string    `yaml:"timeout"`
	RefreshInterval string    `yaml:"refresh_interval"`
	Retention       string    `yaml:"retention"`
	API             APIConfig `yaml:"api"`
}

// envOverrides lists the settings that may come from CAPALINKS_* variables.
type envOverrides struct {
	DatabaseID string `envconfig:"DATABASE_ID"`
	Output     string `envconfig:"OUTPUT"`
	Timeout    string `envconfig:"TIMEOUT"`
	AppVersion string `envconfig:"APP_VERSION"`
	UserAgent  string `envconfig:"USER_AGENT"`
}

// TimeoutDuration returns the per-request timeout. Zero means none.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

func (c *Config) RefreshDuration() time.Duration {
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return time.Hour
	}
	return d
}

func (c *Config) RetentionDuration() time.Duration {
	if c.Retention == "" {
		return 90 * 24 * time.Hour
	}
	d, err := ParseDays(c.Retention)
	if err != nil {
		return 90 * 24 * time.Hour
	}
	return d
}

// ParseDays parses a duration that may use a trailing "d" for days.
func ParseDays(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "capalinks", "config.yaml")
}

func HistoryPath() string {
	return filepath.Join(xdg.CacheHome, "capalinks", "history.db")
}

// LoadEnvFile loads a .env file from the working directory if one exists.
func LoadEnvFile() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file at path (or the default location) on top of
// the embedded defaults, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Non-fatal: the embedded defaults are complete.
		_ = writeDefaults(path)
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.DatabaseID, env.DatabaseID)
	set(&cfg.Output, env.Output)
	set(&cfg.Timeout, env.Timeout)
	set(&cfg.API.AppVersion, env.AppVersion)
	set(&cfg.API.UserAgent, env.UserAgent)
	return nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.DatabaseID == "" {
		return fmt.Errorf("database_id is required")
	}
	if cfg.Output == "" {
		return fmt.Errorf("output is required")
	}
	endpoints := map[string]string{
		"api.id_list_url": cfg.API.IDListURL,
		"api.query_url":   cfg.API.QueryURL,
	}
	for name, raw := range endpoints {
		if raw == "" {
			return fmt.Errorf("%s is required", name)
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: invalid url: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s: url scheme must be http or https, got %q", name, u.Scheme)
		}
	}
	if cfg.Timeout != "" {
		if _, err := time.ParseDuration(cfg.Timeout); err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
	}
	return nil
}
