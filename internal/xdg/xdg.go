// Package xdg provides XDG Base Directory Specification compliant paths
package xdg

import (
	"os"
	"path/filepath"

	"sandboxdash/internal/constants"
)

// ConfigDir returns the XDG config directory for sandboxdash
// Priority: XDG_CONFIG_HOME > ~/.config/sandboxdash
func ConfigDir() (string, error) {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, constants.AppName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", constants.AppName), nil
}

// DataDir returns the XDG data directory for sandboxdash
// Priority: XDG_DATA_HOME > ~/.local/share/sandboxdash
func DataDir() (string, error) {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, constants.AppName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", constants.AppName), nil
}

// StateDir returns the XDG state directory for sandboxdash
// Priority: XDG_STATE_HOME > ~/.local/state/sandboxdash
func StateDir() (string, error) {
	if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
		return filepath.Join(xdgState, constants.AppName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "state", constants.AppName), nil
}

// LockFile returns the path of the single-instance lock used by `serve`
func LockFile() (string, error) {
	stateDir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(stateDir, "server.lock"), nil
}
