package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spboyer/pagescore/internal/webapi"
	"github.com/spboyer/pagescore/internal/webserver"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var (
		port        int
		origins     []string
		allowRemote bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the scoring HTTP API",
		Long: `Start an HTTP server exposing the scoring engine.

Endpoints:
  POST /score, /api/score   Score a {"checks": ..., "weights": ...} document
  GET  /api/rules           Show the active applicability rules and weights
  GET  /api/health          Health check

The server binds to loopback (127.0.0.1) by default. Use --allow-remote to
bind to all interfaces.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProjectConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			allowed := append(append([]string{}, cfg.Server.AllowedOrigins...), origins...)

			host := "127.0.0.1"
			if allowRemote {
				host = "0.0.0.0"
				slog.Warn("binding to all interfaces; the API has no authentication")
			}

			webapi.Version = version
			srv, err := webserver.New(webserver.Config{
				Host:           host,
				Port:           cfg.Server.Port,
				AllowedOrigins: allowed,
				Scorer:         newEngine(cfg),
				Weights:        cfg.Weights,
				Logger:         slog.Default(),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.ErrOrStderr(), "pagescore API: http://%s\n", srv.Addr()) //nolint:errcheck
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from .pagescore.yaml, else 3000)")
	cmd.Flags().StringSliceVar(&origins, "allow-origin", nil, "Origin allowed to call the API from a browser (repeatable)")
	cmd.Flags().BoolVar(&allowRemote, "allow-remote", false,
		"Bind to all interfaces (WARNING: exposes the server to the network with no authentication)")

	return cmd
}
