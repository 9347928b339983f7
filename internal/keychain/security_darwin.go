// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

//go:build darwin

package keychain

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// isVerbose checks if verbose mode is enabled dynamically
func isVerbose() bool {
	return os.Getenv("DBXKIT_VERBOSE") == "1"
}

func debugf(format string, args ...any) {
	if isVerbose() {
		fmt.Fprintf(os.Stderr, "[DEBUG] security_darwin: "+format+"\n", args...)
	}
}

// securityBackend implements keychain operations using macOS security command.
// Entries use the dbxkit service name as account and the token key as service,
// so `security find-generic-password -a dbxkit` lists every stored host.
type securityBackend struct{}

// newSecurityBackend creates a new macOS security command backend.
func newSecurityBackend() (*securityBackend, error) {
	if _, err := exec.LookPath("security"); err != nil {
		return nil, fmt.Errorf("security command not found: %w", err)
	}
	return &securityBackend{}, nil
}

// Set stores a key-value pair in macOS keychain.
func (s *securityBackend) Set(key, value string) error {
	debugf("Set() called for key '%s', value length: %d", key, len(value))

	if err := s.Delete(key); err != nil {
		debugf("Delete() returned: %v", err)
	}

	cmd := exec.Command("security", "add-generic-password",
		"-a", ServiceName, // account name
		"-s", key, // service name
		"-w", value, // password
		"-U", // update if exists
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := fmt.Errorf("failed to store '%s' in keychain: %s: %w", key, strings.TrimSpace(stderr.String()), err)
		debugf("Set() failed: %v", errMsg)
		return errMsg
	}

	debugf("Set() succeeded for key '%s'", key)
	return nil
}

// Get retrieves a value from macOS keychain.
func (s *securityBackend) Get(key string) (string, error) {
	debugf("Get() called for key '%s'", key)

	cmd := exec.Command("security", "find-generic-password",
		"-a", ServiceName, // account name
		"-s", key, // service name
		"-w", // output password only
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if strings.Contains(stderr.String(), "could not be found") {
			debugf("Get() key not found: '%s'", key)
			return "", ErrNotFound
		}
		errMsg := fmt.Errorf("failed to retrieve from keychain: %s: %w", strings.TrimSpace(stderr.String()), err)
		debugf("Get() failed: %v", errMsg)
		return "", errMsg
	}

	result := strings.TrimSpace(stdout.String())
	debugf("Get() returned %d bytes for key '%s'", len(result), key)
	return result, nil
}

// Delete removes a key from macOS keychain.
func (s *securityBackend) Delete(key string) error {
	cmd := exec.Command("security", "delete-generic-password",
		"-a", ServiceName, // account name
		"-s", key, // service name
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if strings.Contains(stderr.String(), "could not be found") {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete from keychain: %s: %w", strings.TrimSpace(stderr.String()), err)
	}

	return nil
}
