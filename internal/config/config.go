// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are written back; the access token lives in the
// OS keychain or the environment.
//
// Values are layered with koanf. Precedence, highest first:
// explicitly set flags > DATABRICKS_* environment > config file > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"

	"dbxkit/cli/internal/xdg"
)

// EnvPrefix is the prefix shared by the Databricks CLI and SDK variables.
const EnvPrefix = "DATABRICKS_"

const (
	DefaultLogLevel = "info"
	DefaultTimeout  = 30 * time.Second
)

// Config holds the resolved CLI settings.
type Config struct {
	Host        string        `koanf:"host"`
	Token       string        `koanf:"token"`
	WarehouseID string        `koanf:"warehouse_id"`
	LogLevel    string        `koanf:"log_level"`
	Timeout     time.Duration `koanf:"timeout"`
}

// known lists every key the loader accepts from the environment and flags.
var known = map[string]bool{
	"host":         true,
	"token":        true,
	"warehouse_id": true,
	"log_level":    true,
	"timeout":      true,
}

// Path returns the default config file location.
func Path() (string, error) {
	return xdg.ConfigFile()
}

// Load reads configuration from path (the default location when empty), the
// environment and flags. A missing file is not an error. Only flags that were
// explicitly set override lower layers; flag names map kebab-case to snake_case.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"log_level": DefaultLogLevel,
		"timeout":   DefaultTimeout.String(),
	}, "."), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if path == "" {
		p, err := Path()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	// 3. Environment: DATABRICKS_WAREHOUSE_ID -> warehouse_id
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if !known[key] {
			return ""
		}
		return key
	}), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !known[key] {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return Config{}, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	c.Host = NormalizeHost(c.Host)
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c, nil
}

// NormalizeHost trims whitespace and trailing slashes and adds https:// when
// the scheme is missing, so "adb-1.azuredatabricks.net/" and
// "https://adb-1.azuredatabricks.net" name the same workspace.
func NormalizeHost(host string) string {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		return ""
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	return host
}

// ReadFile returns only what is stored in the config file at path (the
// default location when empty), without defaults, environment or flags.
// Callers that update and re-save the file use it so transient values from
// the shell are not persisted. A missing file yields a zero Config.
func ReadFile(path string) (Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	var c Config
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return c, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return c, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	if err := k.Unmarshal("", &c); err != nil {
		return c, fmt.Errorf("unable to decode config: %w", err)
	}
	return c, nil
}

// persisted is the on-disk shape. The token is deliberately absent.
type persisted struct {
	Host        string `yaml:"host,omitempty"`
	WarehouseID string `yaml:"warehouse_id,omitempty"`
	LogLevel    string `yaml:"log_level,omitempty"`
	Timeout     string `yaml:"timeout,omitempty"`
}

// Save writes the non-secret settings to path (the default location when
// empty) with 0600 permissions.
func Save(path string, c Config) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	out := persisted{
		Host:        NormalizeHost(c.Host),
		WarehouseID: c.WarehouseID,
		LogLevel:    c.LogLevel,
	}
	if c.Timeout > 0 && c.Timeout != DefaultTimeout {
		out.Timeout = c.Timeout.String()
	}

	b, err := yamlv3.Marshal(out)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
