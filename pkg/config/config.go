// Package config loads the isocam configuration file.
//
// Configuration lives in TOML at ~/.config/isocam/config.toml (or
// $XDG_CONFIG_HOME/isocam/config.toml). Every field has a default, so a
// missing file is not an error, and CLI flags override file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/tilecraft/isocam/pkg/blender"
)

// appName is the directory name used under the user config root.
const appName = "isocam"

// Config holds all configurable settings.
type Config struct {
	// Defaults are the dimensions preloaded into the TUI and used when
	// compute flags are omitted.
	Defaults blender.Dimensions `toml:"defaults"`

	// Presets configures local preset storage.
	Presets PresetsConfig `toml:"presets"`

	// Server configures the HTTP API.
	Server ServerConfig `toml:"server"`

	// Redis holds connection settings for the redis preset backend.
	Redis RedisConfig `toml:"redis"`

	// Mongo holds connection settings for the mongo preset backend.
	Mongo MongoConfig `toml:"mongo"`
}

// PresetsConfig configures where CLI presets are stored.
type PresetsConfig struct {
	Dir string `toml:"dir"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr  string `toml:"addr"`
	Store string `toml:"store"` // "memory", "file", "redis", or "mongo"
}

// RedisConfig mirrors preset.RedisConfig at the file level.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig mirrors preset.MongoConfig at the file level.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Defaults: blender.Dimensions{TileSize: 32, XTiles: 1, YTiles: 1, ZTiles: 1},
		Server: ServerConfig{
			Addr:  ":8473",
			Store: "memory",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Mongo: MongoConfig{URI: "mongodb://localhost:27017", Database: "isocam", Collection: "presets"},
	}
}

// Load reads the config file at path, layering it over Default. A missing
// file yields the defaults without error; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg.applyFallbacks()
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyFallbacks()
	return cfg, nil
}

// DefaultPath returns the standard config file location, honoring
// XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// PresetDir returns the preset storage directory: the configured one, or
// <config dir>/presets.
func (c Config) PresetDir() (string, error) {
	if c.Presets.Dir != "" {
		return c.Presets.Dir, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "presets"), nil
}

// applyFallbacks restores defaults for fields the file left empty.
func (c *Config) applyFallbacks() {
	d := Default()
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.Store == "" {
		c.Server.Store = d.Server.Store
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = d.Redis.Addr
	}
	if c.Mongo.URI == "" {
		c.Mongo.URI = d.Mongo.URI
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = d.Mongo.Database
	}
	if c.Mongo.Collection == "" {
		c.Mongo.Collection = d.Mongo.Collection
	}
	if c.Defaults.TileSize <= 0 {
		c.Defaults.TileSize = d.Defaults.TileSize
	}
}

// configDir returns the user config directory using the XDG standard
// (~/.config/isocam/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
