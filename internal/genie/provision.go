// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package genie

import (
	"context"
	"encoding/json"

	dbxerrors "dbxkit/cli/internal/errors"
	"dbxkit/cli/internal/space"
)

// Input describes the space to provision. Host and token are bound into the API.
type Input struct {
	Document    *space.Document
	DisplayName string
	Description string
	WarehouseID string
}

// BuildRequest serializes the document once and assembles the create request.
func BuildRequest(in Input) (CreateSpaceRequest, error) {
	serialized, err := space.Serialize(in.Document)
	if err != nil {
		return CreateSpaceRequest{}, err
	}
	return CreateSpaceRequest{
		DisplayName:     in.DisplayName,
		Description:     in.Description,
		SerializedSpace: serialized,
		WarehouseID:     in.WarehouseID,
	}, nil
}

// Provision runs build, serialize, send as a single straight sequence.
// The returned error is a *errors.E of kind HTTPFailed, TransportFailed or
// InvalidDocument.
func Provision(ctx context.Context, api API, in Input) (*Space, error) {
	req, err := BuildRequest(in)
	if err != nil {
		return nil, err
	}
	return api.CreateSpace(ctx, req)
}

// IndentRequest renders req as indented JSON for previews.
func IndentRequest(req CreateSpaceRequest) (string, error) {
	b, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return "", dbxerrors.Wrap(dbxerrors.InvalidDocument, "encode create-space request", err)
	}
	return string(b), nil
}
