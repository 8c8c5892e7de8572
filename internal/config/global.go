package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sandboxdash/internal/constants"
	"sandboxdash/internal/errors"
	"sandboxdash/internal/xdg"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Environment overrides
const (
	EnvVirshURL   = constants.EnvPrefix + "VIRSH_URL"
	EnvTmuxURL    = constants.EnvPrefix + "TMUX_URL"
	EnvVirshToken = constants.EnvPrefix + "VIRSH_TOKEN"
	EnvTmuxToken  = constants.EnvPrefix + "TMUX_TOKEN"
	EnvPort       = constants.EnvPrefix + "PORT"
	EnvLogLevel   = constants.EnvPrefix + "LOG_LEVEL"
)

// DotEnvFile is read from the working directory when present
const DotEnvFile = ".env"

// GetConfigDir returns the XDG config directory for sandboxdash
func GetConfigDir() (string, error) {
	return xdg.ConfigDir()
}

// DefaultPath returns $XDG_CONFIG_HOME/sandboxdash/config.toml
func DefaultPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// Load reads the configuration. An empty path means the XDG default, which
// may be absent; an explicit path must exist. Values from .env and the
// environment override the file.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, data, cfg); err != nil {
			return nil, errors.ConfigParseError(path, err)
		}
	case stderrors.Is(err, fs.ErrNotExist) && !explicit:
		// defaults only
	case stderrors.Is(err, fs.ErrNotExist):
		return nil, errors.ConfigNotFound(path)
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to path, as YAML when the extension asks for it
func (c *Config) Save(path string) error {
	data, err := encode(path, c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return os.WriteFile(path, data, constants.FilePermissions)
}

// Encode renders the configuration in the format implied by path
func (c *Config) Encode(path string) ([]byte, error) {
	return encode(path, c)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func decode(path string, data []byte, cfg *Config) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, cfg)
	}
	return toml.Unmarshal(data, cfg)
}

func encode(path string, cfg *Config) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(cfg)
	}
	return toml.Marshal(cfg)
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return errors.ConfigParseError(path, err)
}

// applyEnv overrides file values with SANDBOXDASH_* variables
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvVirshURL); v != "" {
		c.Backends.Virsh.URL = v
	}
	if v := getenv(EnvTmuxURL); v != "" {
		c.Backends.Tmux.URL = v
	}
	if v := getenv(EnvVirshToken); v != "" {
		c.Backends.Virsh.Token = v
	}
	if v := getenv(EnvTmuxToken); v != "" {
		c.Backends.Tmux.Token = v
	}
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.ConfigValidationError(EnvPort, fmt.Sprintf("%q is not a number", v))
		}
		c.Server.Port = port
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Server.LogLevel = v
	}
	return nil
}
