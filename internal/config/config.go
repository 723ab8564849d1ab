package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Log struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Pretty bool   `yaml:"pretty"` // console writer instead of JSON lines
}

type Server struct {
	Addr           string `yaml:"addr"`             // e.g. :8080
	WriteTimeoutMs int    `yaml:"write_timeout_ms"` // per websocket frame
}

type Layout struct {
	DefaultSize int         `yaml:"default_size"`
	Groups      map[int]int `yaml:"groups,omitempty"` // light group id -> fixture count
}

type Config struct {
	Log     Log    `yaml:"log"`
	Server  Server `yaml:"server"`
	Workers int    `yaml:"workers"`
	// Revision forces the filter rule set: auto | legacy | current.
	Revision string `yaml:"revision"`
	Layout   Layout `yaml:"layout"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Log:      Log{Level: "info", Pretty: true},
		Server:   Server{Addr: ":8080", WriteTimeoutMs: 200},
		Workers:  4,
		Revision: "auto",
		Layout:   Layout{DefaultSize: 12},
	}
}

// Load reads path over Default. A missing file is not an error.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, c.Validate()
}

// LoadWithEnv loads path, then a .env file if one exists, then applies
// BEATLIGHTS_* environment overrides.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	_ = godotenv.Load()
	c.applyEnv()
	return c, c.Validate()
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

func (c *Config) applyEnv() {
	c.Log.Level = getEnv("BEATLIGHTS_LOG_LEVEL", c.Log.Level)
	c.Log.Pretty = getEnvBool("BEATLIGHTS_LOG_PRETTY", c.Log.Pretty)
	c.Server.Addr = getEnv("BEATLIGHTS_ADDR", c.Server.Addr)
	c.Workers = getEnvInt("BEATLIGHTS_WORKERS", c.Workers)
	c.Revision = getEnv("BEATLIGHTS_REVISION", c.Revision)
	c.Layout.DefaultSize = getEnvInt("BEATLIGHTS_GROUP_SIZE", c.Layout.DefaultSize)
}

func (c *Config) Validate() error {
	switch c.Revision {
	case "", "auto", "legacy", "current":
	default:
		return fmt.Errorf("revision must be auto, legacy or current, got %q", c.Revision)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Layout.DefaultSize < 1 {
		return fmt.Errorf("layout.default_size must be at least 1, got %d", c.Layout.DefaultSize)
	}
	for id, n := range c.Layout.Groups {
		if n < 1 {
			return fmt.Errorf("layout.groups[%d] must be at least 1, got %d", id, n)
		}
	}
	return nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return def
}
