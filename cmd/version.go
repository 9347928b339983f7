// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

var (
	// Version holds the CLI version information.
	// Release builds set it with -ldflags "-X dbxkit/cli/cmd.Version=...".
	Version = "0.0.0-dev"
)
