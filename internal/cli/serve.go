package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apkgraph/apkgraph/internal/server"
	"github.com/apkgraph/apkgraph/pkg/deps/apkindex"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	index string // APKINDEX file path
	addr  string // listen address
}

// newServeCmd creates the serve command exposing resolved graphs over HTTP.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve dependency graphs over HTTP",
		Long: `Serve dependency graphs from an APKINDEX over an HTTP API.

Endpoints:
  GET /api/packages?q=term     Search packages
  GET /api/graph/{pkg}         Resolved graph as JSON
  GET /api/graph/{pkg}/svg     Resolved graph rendered as SVG

Example:
  apkgraph serve --index APKINDEX --addr :8080`,
		RunE: func(c *cobra.Command, args []string) error {
			cfg := configFromContext(c.Context())

			path := opts.index
			if path == "" {
				path = cfg.Index.Path
			}
			if path == "" {
				return fmt.Errorf("no index: pass --index FILE (or set index.path in the config)")
			}

			idx, err := apkindex.Load(path)
			if err != nil {
				return err
			}

			logger := loggerFromContext(c.Context())
			printInfo("Serving %d packages on %s", idx.Len(), opts.addr)
			return server.New(idx, logger).Run(c.Context(), opts.addr)
		},
	}

	cmd.Flags().StringVarP(&opts.index, "index", "i", "", "APKINDEX file to serve")
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")

	return cmd
}
