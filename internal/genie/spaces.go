// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package genie

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	dbxerrors "dbxkit/cli/internal/errors"
)

// CreateSpace calls POST /api/2.0/genie/spaces with the given request.
// A non-2xx answer yields an HTTPFailed error carrying the raw body; anything
// else that prevents a decoded response yields TransportFailed.
func (h *HTTP) CreateSpace(ctx context.Context, in CreateSpaceRequest) (*Space, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, dbxerrors.Wrap(dbxerrors.TransportFailed, "encode create-space request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+SpacesPath, bytes.NewReader(body))
	if err != nil {
		return nil, dbxerrors.Wrap(dbxerrors.TransportFailed, "build create-space request", err)
	}
	h.setStandardHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, dbxerrors.Wrap(dbxerrors.TransportFailed, "send create-space request", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dbxerrors.Wrap(dbxerrors.TransportFailed, "read create-space response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, dbxerrors.HTTP("create-space failed", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, dbxerrors.Wrap(dbxerrors.TransportFailed, "decode create-space response", err)
	}

	out := &Space{Raw: raw, Body: b}
	// Current API versions name these fields space_id and title.
	if v, ok := raw["space_id"].(string); ok {
		out.ID = v
	}
	if v, ok := raw["id"].(string); ok && v != "" {
		out.ID = v
	}
	if v, ok := raw["display_name"].(string); ok {
		out.DisplayName = v
	}
	if out.DisplayName == "" {
		if v, ok := raw["title"].(string); ok {
			out.DisplayName = v
		}
	}
	return out, nil
}
