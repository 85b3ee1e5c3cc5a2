// Package config loads bluefish settings from a TOML file and the
// environment. Environment variables (BLUEFISH_*) win over the file, and
// the file wins over the defaults.
//
//	[layout]
//	max_passes = 64
//
//	[cache]
//	ttl = "24h"
//	redis_url = "redis://localhost:6379/0"
//
// sets the same values as
//
//	BLUEFISH_LAYOUT_MAX_PASSES=64
//	BLUEFISH_CACHE_TTL=24h
//	BLUEFISH_CACHE_REDIS_URL=redis://localhost:6379/0
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/matzehuels/bluefish/pkg/cache"
	"github.com/matzehuels/bluefish/pkg/errors"
	"github.com/matzehuels/bluefish/pkg/layout"
)

// EnvPrefix prefixes every environment variable. Field names map to
// variables by splitting words, so Cache.RedisURL is BLUEFISH_CACHE_REDIS_URL.
const EnvPrefix = "bluefish"

type Config struct {
	Layout LayoutConfig `toml:"layout" envconfig:"LAYOUT"`
	Render RenderConfig `toml:"render" envconfig:"RENDER"`
	Cache  CacheConfig  `toml:"cache" envconfig:"CACHE"`
	Server ServerConfig `toml:"server" envconfig:"SERVER"`
}

type LayoutConfig struct {
	MaxPasses int `toml:"max_passes" split_words:"true"`
}

type RenderConfig struct {
	Background string  `toml:"background" split_words:"true"`
	Scale      float64 `toml:"scale" split_words:"true"`
}

type CacheConfig struct {
	Disabled bool          `toml:"disabled" split_words:"true"`
	Dir      string        `toml:"dir" split_words:"true"`
	TTL      time.Duration `toml:"ttl" split_words:"true"`
	RedisURL string        `toml:"redis_url" split_words:"true"`
	Prefix   string        `toml:"prefix" split_words:"true"`
}

type ServerConfig struct {
	Addr         string        `toml:"addr" split_words:"true"`
	ReadTimeout  time.Duration `toml:"read_timeout" split_words:"true"`
	WriteTimeout time.Duration `toml:"write_timeout" split_words:"true"`
	MaxBodyBytes int64         `toml:"max_body_bytes" split_words:"true"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{MaxPasses: layout.DefaultMaxPasses},
		Render: RenderConfig{Scale: 2},
		Cache:  CacheConfig{TTL: cache.DefaultTTL, Prefix: "bluefish:"},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
	}
}

// DefaultPath returns the config file location, e.g.
// ~/.config/bluefish/config.toml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bluefish", "config.toml"), nil
}

// Load reads the config file at path, then applies the environment. An
// empty path means DefaultPath, which may be missing; an explicit path must
// exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.decodeFile(path, explicit); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string, required bool) error {
	md, err := toml.DecodeFile(path, c)
	if os.IsNotExist(err) {
		if required {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Layout.MaxPasses <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout.max_passes must be positive (got %d)", c.Layout.MaxPasses)
	}
	if c.Render.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render.scale must be positive (got %g)", c.Render.Scale)
	}
	if err := errors.ValidateColor(c.Render.Background); err != nil {
		return fmt.Errorf("render.background: %w", err)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl cannot be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server.max_body_bytes must be positive")
	}
	return nil
}

// CacheDir returns the configured cache directory or the per-user default.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return cache.DefaultDir()
}
