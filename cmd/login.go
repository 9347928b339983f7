// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"dbxkit/cli/internal/auth"
	dbxerrors "dbxkit/cli/internal/errors"
	"dbxkit/cli/internal/keychain"
	"dbxkit/cli/internal/logging"
	"dbxkit/cli/internal/terminal"
)

// loginCmd stores a personal access token for a workspace in the OS keychain
// and remembers the workspace as the default for later commands.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Store a Databricks personal access token in the OS keychain",
	Long: `The login command saves a personal access token for the workspace given by
--host (or DATABRICKS_HOST) in the OS keychain and records the host and, when
given, the SQL warehouse in the config file.

On a terminal the token is prompted for without echo. Otherwise it is read from
the first line of stdin, e.g.:

  echo "$TOKEN" | dbxkit login --host https://adb-123.4.azuredatabricks.net

When DATABRICKS_TOKEN is set it is stored without prompting.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.FromContext(cmd.Context())

		host := cfg.Host
		if host == "" {
			return dbxerrors.New(dbxerrors.ConfigMissing, "workspace host is required: pass --host or set DATABRICKS_HOST")
		}

		km, err := keychain.GetManager()
		if err != nil {
			return err
		}
		svc := auth.NewService(km, cfgFile)

		if ok, err := svc.HasToken(host); err == nil && ok {
			pterm.Info.Printfln("Replacing the token stored for %s", host)
		} else if err != nil {
			logger.Debug("keychain lookup failed", "host", host, "error", err)
		}

		token := cfg.Token
		if token == "" {
			prompt := fmt.Sprintf("Personal access token for %s: ", host)
			token, err = terminal.ReadSecret(os.Stdin, os.Stderr, prompt)
			if err != nil {
				return fmt.Errorf("reading token: %w", err)
			}
			if terminal.IsInteractive(os.Stderr) {
				terminal.ClearPreviousLines(os.Stderr, len(prompt), terminal.Width(os.Stderr))
			}
		} else {
			logger.Debug("using token from flag or environment")
		}

		if err := svc.Login(host, token, cfg.WarehouseID); err != nil {
			return err
		}

		pterm.Success.Printfln("Logged in to %s", host)
		pterm.Println("  Token stored in the OS keychain")
		if cfg.WarehouseID != "" {
			pterm.Println("  Default SQL warehouse: " + cfg.WarehouseID)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().String("host", "", "Workspace URL (env DATABRICKS_HOST)")
	loginCmd.Flags().String("warehouse-id", "", "Default SQL warehouse id to remember")
	rootCmd.AddCommand(loginCmd)
}
