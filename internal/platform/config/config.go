// Package config loads process-level settings from an optional YAML file and the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	HTTP struct {
		Addr         string   `yaml:"addr"`
		AllowOrigins []string `yaml:"allow_origins"`
	} `yaml:"http"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Catalog struct {
		SnapshotPath string        `yaml:"snapshot_path"`
		TTL          time.Duration `yaml:"ttl"`
		Quote        string        `yaml:"quote"`
		SyncCron     string        `yaml:"sync_cron"`
	} `yaml:"catalog"`
	Redis struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
}

// Load reads config from a YAML file, then applies environment variable overrides and defaults.
// A missing file is not an error; an empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	// Environment variable overrides
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		cfg.HTTP.AllowOrigins = splitList(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("CATALOG_SNAPSHOT"); v != "" {
		cfg.Catalog.SnapshotPath = v
	}
	if v := os.Getenv("CATALOG_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CATALOG_TTL: %w", err)
		}
		cfg.Catalog.TTL = d
	}
	if v := os.Getenv("CATALOG_QUOTE"); v != "" {
		cfg.Catalog.Quote = v
	}
	if v := os.Getenv("CATALOG_SYNC_CRON"); v != "" {
		cfg.Catalog.SyncCron = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		cfg.Redis.Port = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("REDIS_DB: %w", err)
		}
		cfg.Redis.DB = n
	}

	// Defaults
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Catalog.SnapshotPath == "" {
		cfg.Catalog.SnapshotPath = "coin_list.json"
	}
	if cfg.Catalog.TTL == 0 {
		cfg.Catalog.TTL = time.Hour
	}
	if cfg.Catalog.Quote == "" {
		cfg.Catalog.Quote = "USDT"
	}
	if cfg.Redis.Port == "" {
		cfg.Redis.Port = "6379"
	}

	return cfg, nil
}

// Validate checks field values that Load cannot default.
func (c *Config) Validate() error {
	if c.Catalog.TTL < 0 {
		return fmt.Errorf("catalog.ttl must not be negative")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Catalog.SyncCron != "" {
		if _, err := cron.ParseStandard(c.Catalog.SyncCron); err != nil {
			return fmt.Errorf("catalog.sync_cron: %w", err)
		}
	}
	return nil
}

// RedisEnabled reports whether a Redis host is configured. Without one the cache is bypassed.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

// RedisAddr returns host:port.
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}

// SlogLevel parses Log.Level ("debug", "info", "warn", "error").
func (c *Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return l, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
