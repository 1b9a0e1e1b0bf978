// Package config loads zpin settings from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds settings shared by the CLI and the TUI. Command-line flags
// override these values.
type Config struct {
	Output        string `env:"ZPIN_OUTPUT" envDefault:"text"`
	RangeLimit    int    `env:"ZPIN_RANGE_LIMIT" envDefault:"1998"`
	RandomYears   int    `env:"ZPIN_RANDOM_YEARS" envDefault:"100"`
	PageSize      int    `env:"ZPIN_PAGE_SIZE" envDefault:"20"`
	UnderAgeLimit int    `env:"ZPIN_UNDER_AGE" envDefault:"18"`
	PensionAge    int    `env:"ZPIN_PENSION_AGE" envDefault:"65"`
	LogLevel      string `env:"ZPIN_LOG_LEVEL" envDefault:"warn"`
	LogFormat     string `env:"ZPIN_LOG_FORMAT" envDefault:"text"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if !ValidOutput(c.Output) {
		return fmt.Errorf("output must be %s, %s or %s, got %q", OutputText, OutputJSON, OutputYAML, c.Output)
	}
	if c.RangeLimit < 0 {
		return fmt.Errorf("range limit must not be negative, got %d", c.RangeLimit)
	}
	if c.RandomYears < 1 {
		return fmt.Errorf("random years must be positive, got %d", c.RandomYears)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.UnderAgeLimit < 0 || c.PensionAge < 0 {
		return fmt.Errorf("age limits must not be negative")
	}
	return nil
}

// ValidOutput reports whether s names a supported output format.
func ValidOutput(s string) bool {
	switch s {
	case OutputText, OutputJSON, OutputYAML:
		return true
	}
	return false
}
