package mcp

import (
	"context"
	"log/slog"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/ctxsnap/internal/domain/activity"
	"github.com/rpggio/ctxsnap/internal/domain/snapshot"
)

// SnapshotService defines snapshot operations needed by MCP.
type SnapshotService interface {
	Create(ctx context.Context, req snapshot.CreateRequest) (*snapshot.Snapshot, error)
	List(ctx context.Context, opts snapshot.ListOptions) ([]snapshot.Snapshot, error)
	Get(ctx context.Context, id string) (*snapshot.Snapshot, error)
	Update(ctx context.Context, id string, patch snapshot.Patch) (*snapshot.Snapshot, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Config contains server configuration.
type Config struct {
	Snapshots SnapshotService
	Activity  ActivityService
	Version   string
	Logger    *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "ctxsnap",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	t := &tools{
		snapshots: cfg.Snapshots,
		activity:  cfg.Activity,
		logger:    cfg.Logger,
	}
	t.register(server)

	return server
}

// NewHTTPHandler serves server over the streamable HTTP transport.
func NewHTTPHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		nil,
	)
}
