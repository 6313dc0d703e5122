// Package config loads the node's settings.
//
// Settings are resolved in order, later sources overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. An optional YAML file
//  3. Variables from a .env file in the working directory, if present
//  4. Environment variables prefixed PAINT_EDITOR_, for example
//     PAINT_EDITOR_INPUT_DIR or PAINT_EDITOR_SESSION_BACKEND
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PAINT_EDITOR"

// Config holds all node settings.
type Config struct {
	// InputDir is the host's input directory the editor loads images from.
	InputDir string `yaml:"input_dir" split_words:"true"`

	// HTTPAddr is the listen address of the browser-facing endpoint.
	// Empty disables the HTTP server.
	HTTPAddr string `yaml:"http_addr" split_words:"true"`

	Log     LogConfig     `yaml:"log"`
	Session SessionConfig `yaml:"session"`
	Mask    MaskConfig    `yaml:"mask"`
	Overlay OverlayConfig `yaml:"overlay"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SessionConfig selects the session store backend.
type SessionConfig struct {
	Backend  string        `yaml:"backend"`
	RedisURL string        `yaml:"redis_url" split_words:"true"`
	TTL      time.Duration `yaml:"ttl"`
}

// MaskConfig tunes the mask engine.
type MaskConfig struct {
	// Threshold is the summed RGB difference a pixel must exceed to count
	// as drawn.
	Threshold int `yaml:"threshold"`

	// Connectivity is 4 or 8.
	Connectivity int `yaml:"connectivity"`
}

// OverlayConfig styles mask previews.
type OverlayConfig struct {
	Color   string  `yaml:"color"`
	Opacity float64 `yaml:"opacity"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		InputDir: "input",
		HTTPAddr: "127.0.0.1:8189",
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Session: SessionConfig{
			Backend: "memory",
		},
		Mask: MaskConfig{
			Threshold:    30,
			Connectivity: 4,
		},
		Overlay: OverlayConfig{
			Color:   "#FF0000",
			Opacity: 0.5,
		},
	}
}

// Load resolves the configuration. path names an optional YAML file; an
// empty path skips it, but a named file that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the node cannot run with.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input_dir must be set")
	}
	if c.Mask.Threshold < 1 || c.Mask.Threshold > 765 {
		return fmt.Errorf("mask.threshold must be within 1-765, got %d", c.Mask.Threshold)
	}
	if c.Mask.Connectivity != 4 && c.Mask.Connectivity != 8 {
		return fmt.Errorf("mask.connectivity must be 4 or 8, got %d", c.Mask.Connectivity)
	}
	if c.Overlay.Opacity < 0 || c.Overlay.Opacity > 1 {
		return fmt.Errorf("overlay.opacity must be within 0-1, got %g", c.Overlay.Opacity)
	}
	switch c.Session.Backend {
	case "memory":
	case "redis":
		if c.Session.RedisURL == "" {
			return fmt.Errorf("session.redis_url must be set for the redis backend")
		}
	default:
		return fmt.Errorf("unknown session.backend %q", c.Session.Backend)
	}
	return nil
}
