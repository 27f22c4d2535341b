// Package config loads textdiff's YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kalafut/textdiff"
)

// Config is the root configuration document.
type Config struct {
	Compare CompareConfig `yaml:"compare"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// CompareConfig holds defaults for a comparison.
type CompareConfig struct {
	View             string `yaml:"view"` // side-by-side, inline
	IgnoreWhitespace bool   `yaml:"ignore_whitespace"`
	Structured       bool   `yaml:"structured"`
	Context          int    `yaml:"context"`
	WordPairLimit    int    `yaml:"word_pair_limit"`
	Width            int    `yaml:"width"` // terminal width, 0 = detect
	Color            string `yaml:"color"` // auto, always, never
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	MaxConcurrent  int64         `yaml:"max_concurrent"`
	CompareTimeout time.Duration `yaml:"compare_timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Compare: CompareConfig{
			View:          "side-by-side",
			Context:       textdiff.DefaultContext,
			WordPairLimit: textdiff.DefaultWordPairLimit,
			Color:         "auto",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			MaxBodyBytes:   8 << 20,
			MaxConcurrent:  8,
			CompareTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the file at path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document over the defaults and validates the result.
// Unknown keys are an error.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if _, err := textdiff.ParseViewMode(c.Compare.View); err != nil {
		return fmt.Errorf("compare.view: %w", err)
	}
	if c.Compare.Context < 0 {
		return fmt.Errorf("compare.context must not be negative, got %d", c.Compare.Context)
	}
	if c.Compare.WordPairLimit <= 0 {
		return fmt.Errorf("compare.word_pair_limit must be positive, got %d", c.Compare.WordPairLimit)
	}
	if c.Compare.Width < 0 {
		return fmt.Errorf("compare.width must not be negative, got %d", c.Compare.Width)
	}
	switch c.Compare.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("compare.color: unknown value %q", c.Compare.Color)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.Server.MaxConcurrent <= 0 {
		return fmt.Errorf("server.max_concurrent must be positive, got %d", c.Server.MaxConcurrent)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format: unknown value %q", c.Logging.Format)
	}
	return nil
}

// Options returns the per-comparison record described by the compare section.
func (c CompareConfig) Options() textdiff.Options {
	mode, _ := textdiff.ParseViewMode(c.View)
	return textdiff.Options{
		IgnoreWhitespace: c.IgnoreWhitespace,
		Structured:       c.Structured,
		ViewMode:         mode,
	}
}

// FuncOptions returns the engine tunables described by the compare section.
func (c CompareConfig) FuncOptions() []textdiff.FuncOption {
	return []textdiff.FuncOption{
		textdiff.WithContext(c.Context),
		textdiff.WithWordPairLimit(c.WordPairLimit),
	}
}
