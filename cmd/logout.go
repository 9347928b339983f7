// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"dbxkit/cli/internal/auth"
	dbxerrors "dbxkit/cli/internal/errors"
	"dbxkit/cli/internal/keychain"
)

// logoutCmd removes the stored token for a workspace.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token for a workspace",
	Long: `The logout command deletes the personal access token kept in the OS keychain
for --host (or the remembered workspace). The host and warehouse stay in the
config file so a later 'dbxkit login' can reuse them. The token itself stays
valid in Databricks; revoke it under User Settings > Developer if needed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		host := cfg.Host
		if host == "" {
			return dbxerrors.New(dbxerrors.ConfigMissing, "workspace host is required: pass --host or set DATABRICKS_HOST")
		}

		km, err := keychain.GetManager()
		if err != nil {
			return err
		}
		if err := auth.NewService(km, cfgFile).Logout(host); err != nil {
			return err
		}

		pterm.Success.Printfln("Removed the stored token for %s", host)
		return nil
	},
}

func init() {
	logoutCmd.Flags().String("host", "", "Workspace URL (env DATABRICKS_HOST)")
	rootCmd.AddCommand(logoutCmd)
}
