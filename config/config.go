// Package config loads metaexport settings.
//
// Values are layered: embedded defaults, then a YAML file, then
// METAEXPORT_* environment variables.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/metaexport/format"
)

// AppName names the XDG config directory.
const AppName = "metaexport"

//go:embed defaults.yaml
var defaults []byte

// Config holds every configurable setting.
type Config struct {
	Pretty     bool     `yaml:"pretty"`
	SPSVersion string   `yaml:"sps_version"`
	CrossRef   CrossRef `yaml:"crossref"`
	Store      Store    `yaml:"store"`
	Log        Log      `yaml:"log"`
}

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SlogLevel parses Level, defaulting to info when empty or unknown.
func (l Log) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// JSON reports whether log records are written as JSON instead of text.
func (l Log) JSON() bool {
	return strings.EqualFold(l.Format, "json")
}

// CrossRef identifies the depositing organization.
type CrossRef struct {
	DepositorName  string `yaml:"depositor_name"`
	DepositorEmail string `yaml:"depositor_email"`
	Registrant     string `yaml:"registrant"`
}

// Store locates the local document database.
type Store struct {
	Path string `yaml:"path"`
}

var envOverrides = []struct {
	name string
	set  func(*Config, string)
}{
	{"METAEXPORT_DEPOSITOR_NAME", func(c *Config, v string) { c.CrossRef.DepositorName = v }},
	{"METAEXPORT_DEPOSITOR_EMAIL", func(c *Config, v string) { c.CrossRef.DepositorEmail = v }},
	{"METAEXPORT_REGISTRANT", func(c *Config, v string) { c.CrossRef.Registrant = v }},
	{"METAEXPORT_DB", func(c *Config, v string) { c.Store.Path = v }},
	{"LOG_LEVEL", func(c *Config, v string) { c.Log.Level = v }},
	{"METAEXPORT_LOG_LEVEL", func(c *Config, v string) { c.Log.Level = v }},
	{"METAEXPORT_LOG_FORMAT", func(c *Config, v string) { c.Log.Format = v }},
}

// Default returns the embedded defaults.
func Default() (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(defaults, &c); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	return &c, nil
}

// DefaultPath returns the XDG config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load reads path over the defaults and applies environment overrides. An
// empty path falls back to DefaultPath, which may be absent.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	for _, o := range envOverrides {
		if v := os.Getenv(o.name); v != "" {
			o.set(c, v)
		}
	}
	return c, nil
}

// ExportOptions maps the settings onto format options.
func (c *Config) ExportOptions() *format.Options {
	opts := format.NewOptions()
	opts.Pretty = c.Pretty
	if c.SPSVersion != "" {
		opts.SPSVersion = c.SPSVersion
	}
	if c.CrossRef.DepositorName != "" {
		opts.DepositorName = c.CrossRef.DepositorName
	}
	if c.CrossRef.DepositorEmail != "" {
		opts.DepositorEmail = c.CrossRef.DepositorEmail
	}
	if c.CrossRef.Registrant != "" {
		opts.Registrant = c.CrossRef.Registrant
	}
	return opts
}
