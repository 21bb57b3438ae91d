package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Portfolio struct {
		LedgerFile string `yaml:"ledger_file"`
	} `yaml:"portfolio"`
	Schedule struct {
		UpdateCron string `yaml:"update_cron"`
	} `yaml:"schedule"`
	Render struct {
		TailRows int `yaml:"tail_rows"`
	} `yaml:"render"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LEDGER_FILE"); v != "" {
		cfg.Portfolio.LedgerFile = v
	}
	if v := os.Getenv("CRON_UPDATE"); v != "" {
		cfg.Schedule.UpdateCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stockdesk.db"
	}
	if cfg.Portfolio.LedgerFile == "" {
		cfg.Portfolio.LedgerFile = "data/ledger.yaml"
	}
	if cfg.Schedule.UpdateCron == "" {
		// Weekday evenings after US market close
		cfg.Schedule.UpdateCron = "0 30 18 * * 1-5"
	}
	if cfg.Render.TailRows == 0 {
		cfg.Render.TailRows = 20
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required")
	}
	if c.Schedule.UpdateCron == "" {
		return fmt.Errorf("schedule.update_cron is required")
	}
	if c.Render.TailRows < 0 {
		return fmt.Errorf("render.tail_rows must not be negative")
	}
	return nil
}
