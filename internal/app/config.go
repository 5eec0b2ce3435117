package app

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds user-tunable settings, read from .fuzzy/config.yaml and
// overridden by FUZZY_* environment variables.
type Config struct {
	DBPath   string `yaml:"db_path"`
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
	LogFile  string `yaml:"log_file"`  // empty = stderr
	Workers  int    `yaml:"workers"`   // default sampling workers when a definition sets none
	Record   bool   `yaml:"record"`    // append every evaluation to the store
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig(p *Paths) *Config {
	return &Config{
		DBPath:   p.DB,
		LogLevel: "warn",
		Workers:  1,
		Record:   true,
	}
}

// LoadConfig reads path over the defaults. A missing file yields the defaults.
func LoadConfig(path string, defaults *Config) (*Config, error) {
	cfg := *defaults

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("FUZZY_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("FUZZY_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("FUZZY_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("FUZZY_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FUZZY_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := os.Getenv("FUZZY_RECORD"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FUZZY_RECORD: %w", err)
		}
		c.Record = b
	}
	return nil
}
