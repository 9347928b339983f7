// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package genie

import (
	"net/http"
	"strings"
	"time"
)

// SpacesPath is the collection endpoint for Genie spaces.
const SpacesPath = "/api/2.0/genie/spaces"

// DefaultTimeout bounds a single request when the caller passes zero.
const DefaultTimeout = 30 * time.Second

// UserAgent is sent with every request.
var UserAgent = "dbxkit-cli/dev"

// HTTP implements API over the workspace REST endpoints.
type HTTP struct {
	// baseURL is the workspace URL without trailing slash (e.g., "https://adb-123.azuredatabricks.net")
	baseURL string
	// token is the bearer credential sent on every request
	token string
	// client is the underlying HTTP client with configured timeout
	client *http.Client
}

// New creates an API client for the workspace at host authenticated with token.
// A zero timeout selects DefaultTimeout.
func New(host, token string, timeout time.Duration) API {
	return newHTTP(host, token, timeout)
}

func newHTTP(host, token string, timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTP{
		baseURL: strings.TrimRight(host, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// setStandardHeaders applies the headers every Genie request carries.
func (h *HTTP) setStandardHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
}
