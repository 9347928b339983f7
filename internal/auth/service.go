// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth provides local login state for the dbxkit CLI.
// A login stores the personal access token for a workspace host in the OS
// keychain and remembers the host and warehouse in the config file, so later
// commands need no flags. Nothing here talks to the workspace.
package auth

import (
	"errors"
	"strings"

	"dbxkit/cli/internal/config"
	dbxerrors "dbxkit/cli/internal/errors"
	"dbxkit/cli/internal/keychain"
)

// Service centralizes login-related operations against local secure storage
// and the config file.
type Service struct {
	store   keychain.Store
	cfgPath string
}

// NewService constructs an auth Service. An empty cfgPath means the default
// config file location.
func NewService(store keychain.Store, cfgPath string) *Service {
	return &Service{store: store, cfgPath: cfgPath}
}

// Login stores token for host and records host (and warehouseID when given)
// as the defaults in the config file.
func (s *Service) Login(host, token, warehouseID string) error {
	host = config.NormalizeHost(host)
	if host == "" {
		return dbxerrors.New(dbxerrors.ConfigMissing, "workspace host is required (--host or DATABRICKS_HOST)")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return dbxerrors.New(dbxerrors.ConfigMissing, "access token is empty")
	}

	if err := s.store.SaveToken(host, token); err != nil {
		return err
	}
	return s.remember(host, strings.TrimSpace(warehouseID))
}

// Logout removes the stored token for host. The config file keeps the host
// so the next login can reuse it.
func (s *Service) Logout(host string) error {
	host = config.NormalizeHost(host)
	if host == "" {
		return dbxerrors.New(dbxerrors.ConfigMissing, "workspace host is required (--host or DATABRICKS_HOST)")
	}
	return s.store.ClearToken(host)
}

// HasToken reports whether a token is stored for host.
func (s *Service) HasToken(host string) (bool, error) {
	_, err := s.store.LoadToken(config.NormalizeHost(host))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, keychain.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
