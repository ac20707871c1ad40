package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpggio/ctxsnap/internal/mcp"
	"github.com/rpggio/ctxsnap/internal/transport"
	"github.com/rpggio/ctxsnap/internal/web"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd, os.Stdout)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runHTTP(ctx, a)
		},
	}
}

func runHTTP(ctx context.Context, a *app) error {
	opts := transport.Options{
		CORSOrigin: a.cfg.Server.CORSOrigin,
		Logger:     a.logger,
		UI:         web.Handler(),
	}
	if a.cfg.MCP.HTTP {
		mcpServer := mcp.NewServer(mcp.Config{
			Snapshots: a.snapshots,
			Activity:  a.activity,
			Version:   version,
			Logger:    a.logger,
		})
		opts.MCPHandler = mcp.NewHTTPHandler(mcpServer)
	}

	router := transport.NewServer(transport.Services{
		Snapshots: a.snapshots,
		Activity:  a.activity,
	}, opts)

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", addr, "db", a.cfg.DB.Path, "mcp_http", a.cfg.MCP.HTTP)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}
