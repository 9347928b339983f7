// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for dbxkit.
// It wires the docs server, the Genie space provisioner and local login state
// behind cobra subcommands, loads layered configuration before every command
// and carries a slog logger in the command context.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"dbxkit/cli/internal/config"
	"dbxkit/cli/internal/genie"
	"dbxkit/cli/internal/logging"
)

var (
	showVersion bool
	cfgFile     string
	verbose     bool

	// cfg is the configuration resolved for the running command.
	cfg config.Config
)

// errReported marks a failure whose details were already printed, so Execute
// only sets the exit status.
var errReported = errors.New("failure already reported")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dbxkit",
	Short: "Databricks helper: serve dbt docs and provision Genie spaces",
	Long: `dbxkit bundles two small Databricks workflows:

  serve          serve a generated documentation site (e.g. dbt docs) from disk,
                 suitable as a Databricks App entry point
  genie create   create a Genie space from a space document with one API call

Workspace settings are read from flags, DATABRICKS_* environment variables and
the config file, in that order of precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		cfg = loaded

		if verbose {
			os.Setenv("DBXKIT_VERBOSE", "1")
		}
		genie.UserAgent = "dbxkit-cli/" + Version

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		logger := logging.NewLogger(os.Stderr, cfg.LogLevel, verbose)
		logger.Debug("configuration loaded",
			"host", cfg.Host,
			"warehouse_id", cfg.WarehouseID,
			"timeout", cfg.Timeout,
			"token_set", cfg.Token != "",
		)
		cmd.SetContext(logging.WithLogger(ctx, logger))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Fprintf(cmd.OutOrStdout(), "dbxkit %s\n", Version)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application and exits with status 1 on any failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			pterm.Error.WithWriter(os.Stderr).Println(logging.PresentError("dbxkit", err))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/dbxkit/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
