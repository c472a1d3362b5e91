// Package config loads crosslink settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the crosslink tools
type Config struct {
	LogLevel  string `env:"CROSSLINK_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"CROSSLINK_LOG_FORMAT" envDefault:"console"`

	Bench BenchConfig
}

// BenchConfig holds the graph shapes exercised by the bench command
type BenchConfig struct {
	Iterations int   `env:"CROSSLINK_BENCH_ITERATIONS" envDefault:"100"`
	Widths     []int `env:"CROSSLINK_BENCH_WIDTHS" envDefault:"1,10,100,1000" envSeparator:","`
	Heights    []int `env:"CROSSLINK_BENCH_HEIGHTS" envDefault:"1,10,100" envSeparator:","`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format: %s (must be console or json)", c.LogFormat)
	}

	if c.Bench.Iterations < 1 {
		return fmt.Errorf("bench iterations must be at least 1")
	}
	if len(c.Bench.Widths) == 0 || len(c.Bench.Heights) == 0 {
		return fmt.Errorf("bench widths and heights must not be empty")
	}
	for _, w := range c.Bench.Widths {
		if w < 1 {
			return fmt.Errorf("invalid bench width: %d", w)
		}
	}
	for _, h := range c.Bench.Heights {
		if h < 1 {
			return fmt.Errorf("invalid bench height: %d", h)
		}
	}

	return nil
}
