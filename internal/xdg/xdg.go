// Package xdg resolves XDG Base Directory paths for dbxkit.
//
// It falls back to the traditional ~/.config location when XDG_CONFIG_HOME
// is unset and keeps the directory private, since the config file records
// which workspace and warehouse the user works against.
package xdg

import (
	"os"
	"path/filepath"
)

const appName = "dbxkit"

// ConfigFileName is the name of the config file inside ConfigDir.
const ConfigFileName = "config.yaml"

// ConfigDir returns the XDG config directory for dbxkit.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/dbxkit when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}

// ConfigFile returns the full path of the dbxkit config file. The file itself
// may not exist yet.
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}
