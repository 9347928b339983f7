// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package genie provides the client for the Databricks Genie management API.
// It defines the API contract the CLI depends on and an HTTP implementation
// that talks to {host}/api/2.0/genie/spaces.
package genie

import "context"

// API defines the Genie operations the CLI depends on.
// Implementations may call the real workspace or provide mocks for tests.
type API interface {
	// CreateSpace provisions a new space. It performs exactly one request:
	// no retry, no backoff.
	CreateSpace(ctx context.Context, req CreateSpaceRequest) (*Space, error)
}

// CreateSpaceRequest is the body of POST /api/2.0/genie/spaces.
// SerializedSpace holds the JSON-encoded space document as a string.
type CreateSpaceRequest struct {
	DisplayName     string `json:"display_name"`
	Description     string `json:"description"`
	SerializedSpace string `json:"serialized_space"`
	WarehouseID     string `json:"warehouse_id"`
}

// Space is the parsed create response.
type Space struct {
	ID          string
	DisplayName string
	// Raw is the full decoded response object, kept for diagnostic printing.
	Raw map[string]any
	// Body is the response exactly as received.
	Body []byte
}
