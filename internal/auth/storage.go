// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"dbxkit/cli/internal/config"
)

// State is what the config file records about the last login.
type State struct {
	Host        string
	WarehouseID string
}

// Load reads the remembered workspace from the config file only; environment
// variables and flags are not consulted.
func (s *Service) Load() (State, error) {
	c, err := config.ReadFile(s.cfgPath)
	if err != nil {
		return State{}, err
	}
	return State{Host: c.Host, WarehouseID: c.WarehouseID}, nil
}

// remember merges host and warehouseID into the config file, leaving other
// settings in place. An empty warehouseID keeps the previous one unless the
// host changed.
func (s *Service) remember(host, warehouseID string) error {
	c, err := config.ReadFile(s.cfgPath)
	if err != nil {
		return err
	}

	if config.NormalizeHost(c.Host) != host && warehouseID == "" {
		c.WarehouseID = ""
	}
	c.Host = host
	if warehouseID != "" {
		c.WarehouseID = warehouseID
	}
	return config.Save(s.cfgPath, c)
}
