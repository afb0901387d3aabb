// Package config loads the eventlayout project configuration.
//
// Configuration is a TOML file. All keys are optional:
//
//	sheet = "Campos Entrada"
//	data_start_row = 6
//
//	[export]
//	formats = ["xml", "json"]
//	force = false
//	indent = "    "
//
//	[cache]
//	enabled = true
//	ttl = "24h"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//
// [Find] looks for the file in a fixed order; a missing file yields
// [Default]. Command-line flags override loaded values.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/eventlayout/pkg/errors"
)

const (
	// FileName is the project-local configuration file name.
	FileName = "eventlayout.toml"

	appName = "eventlayout"
)

// Config is the full configuration.
type Config struct {
	Sheet        string       `toml:"sheet"`
	DataStartRow int          `toml:"data_start_row"`
	Export       ExportConfig `toml:"export"`
	Cache        CacheConfig  `toml:"cache"`
	Server       ServerConfig `toml:"server"`
}

// ExportConfig controls artifact generation.
type ExportConfig struct {
	Formats []string `toml:"formats"`
	Force   bool     `toml:"force"`
	Indent  string   `toml:"indent"`
}

// CacheConfig controls the artifact cache.
type CacheConfig struct {
	Enabled   bool     `toml:"enabled"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a Go duration string ("90m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Sheet: "Campos Entrada",
		Export: ExportConfig{
			Formats: []string{"xml"},
			Indent:  "    ",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     Duration{24 * time.Hour},
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads the configuration at path on top of [Default]. Keys absent from
// the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find loads the first configuration found among explicit (when set),
// ./eventlayout.toml and $XDG_CONFIG_HOME/eventlayout/config.toml. An
// explicit path must exist; the others are optional. With no file found
// Find returns [Default] and an empty path.
func Find(explicit string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	for _, p := range searchPaths() {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		cfg, err := Load(p)
		return cfg, p, err
	}
	return Default(), "", nil
}

func searchPaths() []string {
	paths := []string{FileName}
	if dir, err := configDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "config.toml"))
	}
	return paths
}

// configDir returns the config directory using XDG standard (~/.config/eventlayout/).
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

var exportFormats = map[string]bool{"xml": true, "json": true, "line": true, "dot": true, "svg": true}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.DataStartRow < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "data_start_row must not be negative (got %d)", c.DataStartRow)
	}
	for _, f := range c.Export.Formats {
		if !exportFormats[f] {
			return errors.New(errors.ErrCodeInvalidInput, "unknown export format %q (want xml, json, line, dot or svg)", f)
		}
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	return nil
}
