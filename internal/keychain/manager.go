// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides centralized, thread-safe keychain operations for dbxkit.
// It stores one Databricks personal access token per workspace host in the OS
// credential store, so the token never touches the config file or shell history.
//
// On macOS the native `security` command is tried first; everywhere else the
// 99designs/keyring backends for the platform are used.
package keychain

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/99designs/keyring"
)

// Global keychain manager instance
var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// ErrNotFound is returned when no token is stored for a host.
var ErrNotFound = errors.New("no token stored in keychain")

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "dbxkit"

// tokenKeyPrefix namespaces per-host token entries.
const tokenKeyPrefix = "token:"

// Store is the subset of keychain operations the rest of the CLI depends on.
type Store interface {
	SaveToken(host, token string) error
	LoadToken(host string) (string, error)
	ClearToken(host string) error
}

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu      sync.RWMutex
	backend keychainBackend
}

var _ Store = (*Manager)(nil)

// keychainBackend defines the interface for keychain operations.
type keychainBackend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager() (*Manager, error) {
	// Try native security backend first on macOS
	if runtime.GOOS == "darwin" {
		backend, err := newSecurityBackend()
		if err == nil {
			return &Manager{backend: backend}, nil
		}
	}

	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return NewManagerWithRing(ring), nil
}

// NewManagerWithRing wraps an already opened keyring. Tests pass
// keyring.NewArrayKeyring to avoid touching the real credential store.
func NewManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{backend: ringBackend{ring: ring}}
}

// GetManager returns the global keychain manager instance.
// If not initialized, it will be created on first call.
// If initialization fails, it will retry on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	globalManager, globalError = NewManager()
	if globalError != nil {
		return nil, globalError
	}

	return globalManager, nil
}

// openRing opens the OS keyring using native platform backends only.
// There is no encrypted-file fallback: if no native store exists the caller
// has to supply the token through DATABRICKS_TOKEN instead.
func openRing() (keyring.Keyring, error) {
	var allowedBackends []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		// Pass requires 'pass' utility installed: brew install pass
		allowedBackends = []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.PassBackend,
		}
	case "windows":
		allowedBackends = []keyring.BackendType{keyring.WinCredBackend}
	case "linux", "freebsd", "openbsd":
		allowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
		}
	default:
		return nil, fmt.Errorf("secure storage not supported on %s; set DATABRICKS_TOKEN instead", runtime.GOOS)
	}

	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowedBackends,
		PassPrefix:      ServiceName,
		// KWallet folder and libsecret collection
		KWalletAppID:            ServiceName,
		KWalletFolder:           ServiceName,
		LibSecretCollectionName: "login",
	}

	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = ServiceName
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if runtime.GOOS == "darwin" {
			return nil, errors.New("macOS Keychain unavailable. On macOS 26.0+, install 'pass': brew install pass gnupg && gpg --generate-key && pass init <gpg-key-id>")
		}
		return nil, fmt.Errorf("no OS credential store available (%w); set DATABRICKS_TOKEN instead", err)
	}

	return ring, nil
}

// TokenKey returns the keychain entry name for a workspace host.
func TokenKey(host string) string {
	return tokenKeyPrefix + strings.TrimRight(strings.TrimSpace(host), "/")
}

// SaveToken stores the access token for host.
// This method is thread-safe.
func (m *Manager) SaveToken(host, token string) error {
	if strings.TrimSpace(host) == "" {
		return errors.New("workspace host is required to store a token")
	}
	if token == "" {
		return errors.New("refusing to store an empty token")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backend.Set(TokenKey(host), token)
}

// LoadToken retrieves the access token for host. ErrNotFound is returned when
// nothing (or an empty value) is stored.
// This method is thread-safe.
func (m *Manager) LoadToken(host string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	token, err := m.backend.Get(TokenKey(host))
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrNotFound
	}
	return token, nil
}

// ClearToken removes the token for host. Removing a missing entry succeeds.
// This method is thread-safe.
func (m *Manager) ClearToken(host string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.backend.Delete(TokenKey(host))
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// ringBackend adapts a keyring.Keyring to keychainBackend.
type ringBackend struct {
	ring keyring.Keyring
}

func (r ringBackend) Set(key, value string) error {
	return r.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: ServiceName + " " + key,
	})
}

func (r ringBackend) Get(key string) (string, error) {
	it, err := r.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(it.Data), nil
}

func (r ringBackend) Delete(key string) error {
	err := r.ring.Remove(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return ErrNotFound
	}
	return err
}
