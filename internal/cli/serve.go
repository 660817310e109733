package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/libscope/internal/server"
)

// serveCommand creates the serve command running the JSON API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr   string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Long: `Serve the JSON API.

Routes (under the prefix, default /api):
  GET /library/{name}            describe a library
  GET /library/{name}/source     source of ?type=&name=[&parent=]
  GET /library/{name}/examples   usage examples [?refresh=true]
  GET /library/{name}/diagram    structure diagram [?format=svg|dot]
  GET /search?q=                 installed packages
  GET /pypi/search?q=            PyPI search
  GET /pypi/package/{name}       PyPI package details
  GET /recommend?q=              library recommendations`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.settings()
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("prefix") {
				prefix = cfg.Server.Prefix
			}

			a, err := c.openApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			server.InstallLogHooks(c.Logger)
			srv := server.New(a.services(), server.Options{Prefix: prefix, Logger: c.Logger})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":5000", "listen address")
	cmd.Flags().StringVar(&prefix, "prefix", "/api", "route prefix")
	return cmd
}
