// Package config loads the dashboard configuration from a TOML (or YAML)
// file, a .env file and SANDBOXDASH_* environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"sandboxdash/internal/constants"
	"sandboxdash/internal/errors"

	"github.com/sirupsen/logrus"
)

// Config is the complete dashboard configuration
type Config struct {
	Server   ServerConfig   `toml:"server" yaml:"server" json:"server"`
	Backends BackendsConfig `toml:"backends" yaml:"backends" json:"backends"`
	Storage  StorageConfig  `toml:"storage" yaml:"storage" json:"storage"`
}

type ServerConfig struct {
	Host            string   `toml:"host" yaml:"host" json:"host"`
	Port            int      `toml:"port" yaml:"port" json:"port"`
	ReadTimeout     Duration `toml:"read_timeout" yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout" yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
	LogLevel        string   `toml:"log_level" yaml:"log_level" json:"log_level"`
	LogFormat       string   `toml:"log_format" yaml:"log_format" json:"log_format"` // "text" or "json"
	AllowOrigins    []string `toml:"allow_origins,omitempty" yaml:"allow_origins,omitempty" json:"allow_origins,omitempty"`
}

type BackendsConfig struct {
	HTTPTimeout Duration      `toml:"http_timeout" yaml:"http_timeout" json:"http_timeout"`
	Virsh       BackendConfig `toml:"virsh" yaml:"virsh" json:"virsh"`
	Tmux        BackendConfig `toml:"tmux" yaml:"tmux" json:"tmux"`
}

// BackendConfig points at one REST backend
type BackendConfig struct {
	URL   string `toml:"url" yaml:"url" json:"url"`
	Token string `toml:"token,omitempty" yaml:"token,omitempty" json:"token,omitempty"`
}

type StorageConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled" json:"enabled"`
	Path    string `toml:"path,omitempty" yaml:"path,omitempty" json:"path,omitempty"` // empty means $XDG_DATA_HOME/sandboxdash/activity.db
}

// Duration is a time.Duration written as "30s" in config files
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            constants.DefaultServerHost,
			Port:            constants.DefaultServerPort,
			ReadTimeout:     Duration(constants.DefaultServerReadTimeout),
			WriteTimeout:    Duration(constants.DefaultServerWriteTimeout),
			ShutdownTimeout: Duration(constants.DefaultServerShutdownTimeout),
			LogLevel:        "info",
			LogFormat:       "text",
		},
		Backends: BackendsConfig{
			HTTPTimeout: Duration(constants.DefaultHTTPClientTimeout),
			Virsh:       BackendConfig{URL: constants.DefaultVirshURL},
			Tmux:        BackendConfig{URL: constants.DefaultTmuxURL},
		},
		Storage: StorageConfig{
			Enabled: true,
		},
	}
}

// applyDefaults fills zero values left by a partial config file
func (c *Config) applyDefaults() {
	d := Default()

	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = d.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = d.Server.WriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = d.Server.LogLevel
	}
	if c.Server.LogFormat == "" {
		c.Server.LogFormat = d.Server.LogFormat
	}
	if c.Backends.HTTPTimeout == 0 {
		c.Backends.HTTPTimeout = d.Backends.HTTPTimeout
	}
	if c.Backends.Virsh.URL == "" {
		c.Backends.Virsh.URL = d.Backends.Virsh.URL
	}
	if c.Backends.Tmux.URL == "" {
		c.Backends.Tmux.URL = d.Backends.Tmux.URL
	}
}

// Validate checks ports, timeouts, log settings and backend URLs
func (c *Config) Validate() error {
	if c == nil {
		return errors.ConfigValidationError("config", "cannot be nil")
	}

	if c.Server.Port < constants.MinPortNumber || c.Server.Port > constants.MaxPortNumber {
		return errors.ConfigValidationError("server.port", fmt.Sprintf("%d is out of range", c.Server.Port))
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return errors.ConfigValidationError("server.host", "cannot be empty")
	}
	if _, err := logrus.ParseLevel(c.Server.LogLevel); err != nil {
		return errors.ConfigValidationError("server.log_level", err.Error())
	}
	switch c.Server.LogFormat {
	case "text", "json":
	default:
		return errors.ConfigValidationError("server.log_format", fmt.Sprintf("unknown format %q", c.Server.LogFormat))
	}

	if c.Backends.HTTPTimeout <= 0 {
		return errors.ConfigValidationError("backends.http_timeout", "must be positive")
	}
	if err := validateURL("backends.virsh.url", c.Backends.Virsh.URL); err != nil {
		return err
	}
	if err := validateURL("backends.tmux.url", c.Backends.Tmux.URL); err != nil {
		return err
	}

	return nil
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.ConfigValidationError(field, err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.ConfigValidationError(field, fmt.Sprintf("%q must be an absolute http(s) URL", raw))
	}
	if u.Host == "" {
		return errors.ConfigValidationError(field, fmt.Sprintf("%q has no host", raw))
	}
	return nil
}

// Address is the host:port the dashboard binds to
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Redacted returns a copy with backend tokens masked
func (c *Config) Redacted() *Config {
	cp := *c
	cp.Server.AllowOrigins = append([]string(nil), c.Server.AllowOrigins...)
	if cp.Backends.Virsh.Token != "" {
		cp.Backends.Virsh.Token = "********"
	}
	if cp.Backends.Tmux.Token != "" {
		cp.Backends.Tmux.Token = "********"
	}
	return &cp
}
