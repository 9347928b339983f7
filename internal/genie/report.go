// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package genie

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	dbxerrors "dbxkit/cli/internal/errors"
	"dbxkit/cli/internal/httperrors"
	"dbxkit/cli/internal/logging"

	"github.com/pterm/pterm"
)

// PrintResult writes the success status lines followed by the full response.
func PrintResult(w io.Writer, s *Space) {
	pterm.Success.WithWriter(w).Println("Genie space created successfully!")
	pterm.Fprintln(w, fmt.Sprintf("Space ID: %s", s.ID))
	pterm.Fprintln(w, fmt.Sprintf("Space Name: %s", s.DisplayName))
	pterm.Fprintln(w)
	pterm.Fprintln(w, "Full response:")
	pterm.Fprintln(w, prettyJSON(s.Body))
}

// PrintFailure writes the status lines for a failed provisioning attempt.
// HTTP errors show the status and raw response body; everything else shows
// the cause plus network troubleshooting for host.
func PrintFailure(w io.Writer, host string, err error) {
	if err == nil {
		return
	}
	e, ok := dbxerrors.As(err)
	if ok && e.Kind == dbxerrors.HTTPFailed {
		pterm.Error.WithWriter(w).Printfln("✗ HTTP Error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
		pterm.Fprintln(w, "Response: "+logging.Mask(e.Body))
		pterm.Fprintln(w)
		pterm.Fprintln(w, logging.FormatAPIError(e.StatusCode, e.Body))
		return
	}

	pterm.Error.WithWriter(w).Printfln("✗ Error: %s", logging.Mask(err.Error()))
	if ok && e.Kind == dbxerrors.TransportFailed && e.Err != nil {
		pterm.Fprintln(w)
		httperrors.Describe(w, e.Err, "creating the Genie space", host)
	}
}

// prettyJSON indents body when it is JSON and returns it verbatim otherwise.
func prettyJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return string(body)
	}
	return buf.String()
}
