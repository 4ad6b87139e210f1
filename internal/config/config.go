// Package config loads service configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the serve command's configuration.
type Config struct {
	// Addr is the listen address for the gateway-facing HTTP server.
	Addr string `yaml:"addr"`

	// ShortCode and Extension form the service address subscribers dial,
	// e.g. *920*1802#.
	ShortCode string `yaml:"short_code"`
	Extension string `yaml:"extension"`

	// MenuFile points at a YAML menu definition. Empty means the
	// built-in reference menu.
	MenuFile string `yaml:"menu_file"`

	LogLevel string `yaml:"log_level"`

	Redis Redis `yaml:"redis"`
}

// Redis configures the optional Redis-backed session store. An empty
// Addr keeps sessions in process memory.
type Redis struct {
	Addr     string   `yaml:"addr"`
	Password string   `yaml:"password"`
	DB       int      `yaml:"db"`
	TTL      Duration `yaml:"ttl"`
}

// Duration wraps time.Duration so YAML can carry values like "90s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
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

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Addr:      ":8080",
		ShortCode: "920",
		Extension: "1802",
		LogLevel:  "info",
		Redis: Redis{
			TTL: Duration(5 * time.Minute),
		},
	}
}

// Load builds the configuration: defaults, then the YAML file when a
// path is given, then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.ShortCode == "" || cfg.Extension == "" {
		return Config{}, fmt.Errorf("short_code and extension must be set")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Addr, "USSD_ADDR")
	setString(&cfg.ShortCode, "USSD_SHORT_CODE")
	setString(&cfg.Extension, "USSD_EXTENSION")
	setString(&cfg.MenuFile, "USSD_MENU_FILE")
	setString(&cfg.LogLevel, "USSD_LOG_LEVEL")
	setString(&cfg.Redis.Addr, "USSD_REDIS_ADDR")
	setString(&cfg.Redis.Password, "USSD_REDIS_PASSWORD")

	if v := os.Getenv("USSD_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = db
		}
	}
	if v := os.Getenv("USSD_SESSION_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.Redis.TTL = Duration(ttl)
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
