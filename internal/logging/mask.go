// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides utilities for secure logging and error presentation.
// It includes functions for masking sensitive information in log messages,
// formatting API errors for user-friendly display, and building the structured
// logger the commands share.
//
// The package helps ensure that personal access tokens and other secrets are
// not accidentally exposed in logs or error messages shown to users.
package logging

import (
	"regexp"
	"strings"
)

var (
	reBearer   = regexp.MustCompile(`(?i)(bearer\s+)([A-Za-z0-9._~+/=-]+)`)
	reToken    = regexp.MustCompile(`(?i)(token=|token:\s*|"token"\s*:\s*")([A-Za-z0-9._~+/=-]+)`)
	reDapi     = regexp.MustCompile(`\bdapi[0-9a-f]{16,}(-\d+)?\b`)
	rePassword = regexp.MustCompile(`(?i)(password=)([^\s;&]+)`)
)

// Mask replaces sensitive values in the input string with "***".
func Mask(s string) string {
	out := s
	out = reBearer.ReplaceAllString(out, "${1}***")
	out = reToken.ReplaceAllString(out, "${1}***")
	out = reDapi.ReplaceAllString(out, "dapi***")
	out = rePassword.ReplaceAllString(out, "${1}***")
	for _, k := range []string{"DATABRICKS_TOKEN", "DATABRICKS_CLIENT_SECRET"} {
		out = maskEnvPair(out, k)
	}
	return out
}

// maskEnvPair masks the value of KEY=VALUE occurrences.
func maskEnvPair(s, key string) string {
	idx := strings.Index(s, key+"=")
	if idx < 0 {
		return s
	}
	start := idx + len(key) + 1
	end := start
	for end < len(s) && s[end] != ' ' && s[end] != '\n' && s[end] != ';' {
		end++
	}
	return s[:start] + "***" + maskEnvPair(s[end:], key)
}
