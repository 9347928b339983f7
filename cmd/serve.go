// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"dbxkit/cli/internal/docsite"
	"dbxkit/cli/internal/logging"
)

// appPortEnv is set by the Databricks Apps runtime.
const appPortEnv = "DATABRICKS_APP_PORT"

var serveOpts struct {
	dir   string
	index string
	bind  string
	port  int
}

// serveCmd serves a generated documentation site until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a generated documentation site (e.g. dbt docs)",
	Long: `Serve answers "/" with the entry document (index.html by default) and every
other path with the file of that name under --dir, or 404 when there is none.
Directories are never listed.

Run it from the output of 'dbt docs generate' (the target/ directory) or deploy
it as the command of a Databricks App; the port is taken from --port, then
DATABRICKS_APP_PORT, then 8000.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, err := resolvePort(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger := logging.FromContext(ctx)
		addr := net.JoinHostPort(serveOpts.bind, strconv.Itoa(port))

		if _, err := os.Stat(filepath.Join(serveOpts.dir, serveOpts.index)); err != nil {
			pterm.Warning.Printfln("%s not found in %s; \"/\" will answer 404", serveOpts.index, serveOpts.dir)
		}
		pterm.Info.Printfln("Serving %s on http://%s (Ctrl+C to stop)", serveOpts.dir, addr)

		srv := docsite.New(docsite.Options{
			Root:   serveOpts.dir,
			Index:  serveOpts.index,
			Addr:   addr,
			Logger: logger,
		})
		return srv.Serve(ctx)
	},
}

// resolvePort applies --port, then DATABRICKS_APP_PORT, then the default.
func resolvePort(cmd *cobra.Command) (int, error) {
	if cmd.Flags().Changed("port") {
		return checkPort(serveOpts.port, "--port")
	}
	if v := os.Getenv(appPortEnv); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", appPortEnv, v, err)
		}
		return checkPort(p, appPortEnv)
	}
	return docsite.DefaultPort, nil
}

func checkPort(p int, source string) (int, error) {
	if p < 1 || p > 65535 {
		return 0, fmt.Errorf("invalid %s %d: must be between 1 and 65535", source, p)
	}
	return p, nil
}

func init() {
	f := serveCmd.Flags()
	f.StringVarP(&serveOpts.dir, "dir", "d", ".", "Directory holding the generated site")
	f.StringVar(&serveOpts.index, "index", docsite.DefaultIndex, "Entry document served at /")
	f.StringVar(&serveOpts.bind, "bind", "0.0.0.0", "Address to listen on")
	f.IntVarP(&serveOpts.port, "port", "p", docsite.DefaultPort, fmt.Sprintf("Port to listen on (env %s)", appPortEnv))
	rootCmd.AddCommand(serveCmd)
}
