package main

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"netacho/internal/httpapi"
	"netacho/internal/logging"
	"netacho/internal/mcp"
)

func newServeCmd(open opener) *cobra.Command {
	var flags struct {
		http     bool
		httpAddr string
	}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Long: `Starts an MCP server over stdin/stdout. An editor connects via its MCP
config and calls the wizard and full-auto tools directly.

The server monitors its parent process. When the editor goes away the
server shuts down instead of lingering.

With --http the same tools are also served as JSON over HTTP.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			var addr string
			if flags.http || flags.httpAddr != "" {
				addr = a.cfg.HTTP.Addr
				if flags.httpAddr != "" {
					addr = flags.httpAddr
				}
			}
			return serve(cmd.Context(), a, addr)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&flags.http, "http", false, "Also serve tools over HTTP on http.addr")
	f.StringVar(&flags.httpAddr, "http-addr", "", "HTTP listen address (implies --http)")
	return cmd
}

func serve(parent context.Context, a *app, httpAddr string) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	mcp.WatchParent(ctx, cancel)
	srv := mcp.NewServer(a.router, version)
	log := logging.New("mcp")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		log.Info("starting netacho MCP server over stdio (parent watchdog active)")
		return srv.Run(gctx)
	})
	if httpAddr != "" {
		api := httpapi.New(a.router)
		g.Go(func() error {
			return api.ListenAndServe(gctx, httpAddr, a.cfg.HTTP.ReadTimeout, a.cfg.HTTP.WriteTimeout)
		})
	}
	return g.Wait()
}
