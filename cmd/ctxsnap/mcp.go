package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/ctxsnap/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// stdout carries JSON-RPC, so logs go to stderr.
			a, err := bootstrap(cmd, os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			server := mcp.NewServer(mcp.Config{
				Snapshots: a.snapshots,
				Activity:  a.activity,
				Version:   version,
				Logger:    a.logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a.logger.Info("starting stdio transport", "db", a.cfg.DB.Path)
			// Run blocks until stdin closes or ctx is canceled.
			if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
				return fmt.Errorf("stdio server error: %w", err)
			}
			return nil
		},
	}
}
