// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"dbxkit/cli/internal/credentials"
	dbxerrors "dbxkit/cli/internal/errors"
	"dbxkit/cli/internal/genie"
	"dbxkit/cli/internal/keychain"
	"dbxkit/cli/internal/logging"
	"dbxkit/cli/internal/space"
	"dbxkit/cli/internal/terminal"
)

const (
	defaultDisplayName = "My Genie Space"
	defaultDescription = "Used to understand our customers and order behaviour"
)

var genieOpts struct {
	spaceFile   string
	catalog     string
	schema      string
	displayName string
	description string
	dryRun      bool
}

var genieCmd = &cobra.Command{
	Use:   "genie",
	Short: "Manage Genie spaces",
}

// genieCreateCmd provisions one Genie space with a single POST to the
// workspace. There is no retry: the outcome of that one request is reported.
var genieCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a Genie space from a space document",
	Long: `Create builds a Genie space document, serializes it and sends exactly one
POST to {host}/api/2.0/genie/spaces.

The document comes from --space-file (YAML or JSON, see 'dbxkit genie sample')
or, when no file is given, from the built-in sample bound to --catalog/--schema.

The access token is taken from --token, DATABRICKS_TOKEN or the keychain entry
written by 'dbxkit login', in that order.

Exit status is 0 when the space is created. Any failure, including an HTTP
error answer or a connection error, exits with status 1 after it is printed.`,
	Example: `  dbxkit genie sample --catalog main --schema sales > space.yaml
  dbxkit genie create --space-file space.yaml --warehouse-id abcdef0123456789
  dbxkit genie create --catalog main --schema sales --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := logging.FromContext(ctx)
		out := cmd.OutOrStdout()

		doc, err := buildDocument(out)
		if err != nil {
			return err
		}

		creds, credErr := credentials.Resolve(cfg, keychainStore(cmd))
		logger.Debug("credentials resolved",
			"host", creds.Host,
			"token_source", string(creds.TokenSource),
			"warehouse_id", creds.WarehouseID,
		)

		in := genie.Input{
			Document:    doc,
			DisplayName: genieOpts.displayName,
			Description: genieOpts.description,
			WarehouseID: creds.WarehouseID,
		}

		if genieOpts.dryRun {
			return printDryRun(out, creds, in)
		}
		if credErr != nil {
			return credErr
		}

		api := genie.New(creds.Host, creds.Token, cfg.Timeout)

		stop := func() {}
		if terminal.IsInteractive(os.Stderr) {
			stop = startInlineSpinner(os.Stderr, "Creating Genie space", []string{"|", "/", "-", "\\"}, 120*time.Millisecond)
		}
		started := time.Now()
		created, err := genie.Provision(ctx, api, in)
		stop()
		logger.Debug("create-space finished", "duration", time.Since(started), "error", err)

		if err != nil {
			genie.PrintFailure(out, creds.Host, err)
			return errReported
		}
		genie.PrintResult(out, created)
		return nil
	},
}

// genieSampleCmd prints the built-in sample document as an editable YAML file.
var genieSampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print a sample Genie space document as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := space.Marshal(space.Sample(genieOpts.catalog, genieOpts.schema))
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

// buildDocument loads --space-file or falls back to the sample bound to
// --catalog/--schema. Blank identifiers in a loaded file are filled in.
func buildDocument(out io.Writer) (*space.Document, error) {
	if genieOpts.spaceFile != "" {
		if genieOpts.catalog != "" || genieOpts.schema != "" {
			return nil, dbxerrors.New(dbxerrors.InvalidDocument, "--space-file cannot be combined with --catalog/--schema")
		}
		doc, err := space.Load(genieOpts.spaceFile)
		if err != nil {
			return nil, err
		}
		if n := space.AssignMissingIDs(doc); n > 0 {
			pterm.Info.WithWriter(out).Printfln("Assigned %d missing identifier(s) in %s", n, genieOpts.spaceFile)
		}
		return doc, nil
	}

	if genieOpts.catalog == "" || genieOpts.schema == "" {
		return nil, dbxerrors.New(dbxerrors.InvalidDocument, "either --space-file or both --catalog and --schema are required")
	}
	return space.Sample(genieOpts.catalog, genieOpts.schema), nil
}

// printDryRun shows the request that would be sent. The token never appears.
func printDryRun(out io.Writer, creds credentials.Credentials, in genie.Input) error {
	req, err := genie.BuildRequest(in)
	if err != nil {
		return err
	}
	body, err := genie.IndentRequest(req)
	if err != nil {
		return err
	}

	host := creds.Host
	if host == "" {
		host = "<DATABRICKS_HOST>"
	}
	auth := "Bearer ****"
	if creds.Token == "" {
		auth = "<missing token>"
	}

	pterm.Info.WithWriter(out).Println("Dry run: nothing will be sent")
	pterm.Fprintln(out, fmt.Sprintf("POST %s%s", host, genie.SpacesPath))
	pterm.Fprintln(out, "Authorization: "+auth)
	pterm.Fprintln(out, "Content-Type: application/json")
	pterm.Fprintln(out)
	pterm.Fprintln(out, logging.Mask(body))
	return nil
}

// keychainStore returns the OS keychain, or nil when none is available so
// that credentials fall back to flags and environment only.
func keychainStore(cmd *cobra.Command) keychain.Store {
	m, err := keychain.GetManager()
	if err != nil {
		logging.FromContext(cmd.Context()).Debug("keychain unavailable", "error", err)
		return nil
	}
	return m
}

func init() {
	f := genieCreateCmd.Flags()
	f.StringVar(&genieOpts.spaceFile, "space-file", "", "Space document (YAML or JSON)")
	f.StringVar(&genieOpts.catalog, "catalog", "", "Catalog for the built-in sample document")
	f.StringVar(&genieOpts.schema, "schema", "", "Schema for the built-in sample document")
	f.StringVar(&genieOpts.displayName, "display-name", defaultDisplayName, "Display name of the new space")
	f.StringVar(&genieOpts.description, "description", defaultDescription, "Description of the new space")
	f.String("warehouse-id", "", "SQL warehouse id (env DATABRICKS_WAREHOUSE_ID)")
	f.String("host", "", "Workspace URL (env DATABRICKS_HOST)")
	f.String("token", "", "Personal access token (env DATABRICKS_TOKEN)")
	f.Duration("timeout", 0, "Request timeout (default 30s)")
	f.BoolVar(&genieOpts.dryRun, "dry-run", false, "Print the request instead of sending it")

	sf := genieSampleCmd.Flags()
	sf.StringVar(&genieOpts.catalog, "catalog", "", "Catalog holding the sample tables")
	sf.StringVar(&genieOpts.schema, "schema", "", "Schema holding the sample tables")
	_ = genieSampleCmd.MarkFlagRequired("catalog")
	_ = genieSampleCmd.MarkFlagRequired("schema")

	genieCmd.AddCommand(genieCreateCmd, genieSampleCmd)
	rootCmd.AddCommand(genieCmd)
}
