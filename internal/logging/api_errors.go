// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pterm/pterm"
)

// APIErrorType represents the category of a workspace API error
type APIErrorType int

const (
	APIErrorUnknown APIErrorType = iota
	APIErrorBadRequest
	APIErrorAuth
	APIErrorPermission
	APIErrorNotFound
	APIErrorConflict
	APIErrorRateLimited
	APIErrorServer
)

// ParseAPIError categorizes an HTTP status from the workspace API
func ParseAPIError(status int) APIErrorType {
	switch {
	case status == http.StatusBadRequest:
		return APIErrorBadRequest
	case status == http.StatusUnauthorized:
		return APIErrorAuth
	case status == http.StatusForbidden:
		return APIErrorPermission
	case status == http.StatusNotFound:
		return APIErrorNotFound
	case status == http.StatusConflict:
		return APIErrorConflict
	case status == http.StatusTooManyRequests:
		return APIErrorRateLimited
	case status >= 500:
		return APIErrorServer
	default:
		return APIErrorUnknown
	}
}

// apiErrorBody is the error envelope Databricks REST endpoints return.
type apiErrorBody struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	Error     string `json:"error"`
}

// FormatAPIError formats a failed API response in a user-friendly way
func FormatAPIError(status int, body string) string {
	var builder strings.Builder

	switch ParseAPIError(status) {
	case APIErrorBadRequest:
		builder.WriteString("The workspace rejected the request.\n")
		builder.WriteString("Check that:\n")
		builder.WriteString("  • The warehouse id exists and you can use it\n")
		builder.WriteString("  • Every table identifier is a full catalog.schema.table name\n")
		builder.WriteString("  • The space document fields are spelled correctly\n")

	case APIErrorAuth:
		builder.WriteString("The access token was not accepted.\n")
		builder.WriteString("To fix this:\n")
		builder.WriteString("  • Run 'dbxkit login' to store a fresh personal access token\n")
		builder.WriteString("  • Or set DATABRICKS_TOKEN for this shell\n")

	case APIErrorPermission:
		builder.WriteString("The token is valid but lacks permission for this operation.\n")
		builder.WriteString("Creating Genie spaces needs CAN USE on the warehouse and SELECT on the tables.\n")

	case APIErrorNotFound:
		builder.WriteString("The Genie API was not found on this host.\n")
		builder.WriteString("Make sure DATABRICKS_HOST is the workspace URL and Genie is enabled for it.\n")

	case APIErrorConflict:
		builder.WriteString("The workspace reported a conflict with an existing resource.\n")

	case APIErrorRateLimited:
		builder.WriteString("The workspace is rate limiting requests. Wait a moment before running again.\n")

	case APIErrorServer:
		builder.WriteString("The workspace encountered an internal error.\n")
		builder.WriteString("This is not a problem with your configuration. Try again in a few minutes.\n")

	default:
		builder.WriteString("The workspace answered with an unexpected status.\n")
	}

	var parsed apiErrorBody
	if err := json.Unmarshal([]byte(body), &parsed); err == nil {
		msg := parsed.Message
		if msg == "" {
			msg = parsed.Error
		}
		if parsed.ErrorCode != "" || msg != "" {
			builder.WriteString("\n")
			detail := strings.TrimSpace(strings.Join([]string{parsed.ErrorCode, msg}, " "))
			builder.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Details: " + Mask(detail)))
		}
	}

	return builder.String()
}
