package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spboyer/pagescore/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start an MCP server on stdio",
		Long: `Start a Model Context Protocol server over stdin/stdout so editors and
agents can score content.

Tools:
  content_score   Score a set of check results
  content_rules   Show the active applicability rules`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProjectConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := slog.Default()
			s := mcp.NewServer(newEngine(cfg), version, logger)
			fmt.Fprintln(cmd.ErrOrStderr(), "MCP server running on stdio") //nolint:errcheck

			err = mcp.ServeStdio(ctx, s, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
