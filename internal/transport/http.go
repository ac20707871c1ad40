package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/ctxsnap/internal/domain/activity"
	"github.com/rpggio/ctxsnap/internal/domain/snapshot"
)

// SnapshotService is the snapshot surface the HTTP API depends on.
type SnapshotService interface {
	Create(ctx context.Context, req snapshot.CreateRequest) (*snapshot.Snapshot, error)
	List(ctx context.Context, opts snapshot.ListOptions) ([]snapshot.Snapshot, error)
	Get(ctx context.Context, id string) (*snapshot.Snapshot, error)
	Update(ctx context.Context, id string, patch snapshot.Patch) (*snapshot.Snapshot, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ActivityService is the activity surface the HTTP API depends on.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services groups the domain services served over HTTP.
type Services struct {
	Snapshots SnapshotService
	Activity  ActivityService
}

// Options configures the router.
type Options struct {
	// CORSOrigin is echoed in Access-Control-Allow-Origin.
	CORSOrigin string
	Logger     *slog.Logger
	// MCPHandler is mounted at /mcp when non-nil.
	MCPHandler http.Handler
	// UI serves the single-page app at / and /static/.
	UI http.Handler
	// Now is used for the health timestamp.
	Now func() time.Time
}

// Server wires HTTP handlers.
type Server struct {
	snapshots SnapshotService
	activity  ActivityService
	logger    *slog.Logger
	now       func() time.Time
}

// NewServer creates an HTTP server router with middleware.
func NewServer(services Services, opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	srv := &Server{
		snapshots: services.Snapshots,
		activity:  services.Activity,
		logger:    logger,
		now:       now,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(Recoverer(logger))
	r.Use(CORS(opts.CORSOrigin))

	r.NotFound(srv.handleNotFound)
	r.MethodNotAllowed(srv.handleNotFound)

	r.Get("/health", srv.handleHealth)

	r.Route("/snapshots", srv.snapshotRoutes)
	r.Route("/api", func(r chi.Router) {
		r.Route("/snapshots", srv.snapshotRoutes)
		r.Get("/activity", srv.handleListActivity)
	})

	if opts.MCPHandler != nil {
		r.Handle("/mcp", opts.MCPHandler)
		r.Handle("/mcp/*", opts.MCPHandler)
	}

	if opts.UI != nil {
		r.Get("/", opts.UI.ServeHTTP)
		r.Get("/static/*", opts.UI.ServeHTTP)
	}

	return r
}

func (s *Server) snapshotRoutes(r chi.Router) {
	r.Get("/", s.handleListSnapshots)
	r.Post("/", s.handleCreateSnapshot)
	r.Get("/{id}", s.handleGetSnapshot)
	r.Patch("/{id}", s.handleUpdateSnapshot)
	r.Delete("/{id}", s.handleDeleteSnapshot)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"ts":     s.now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeErrorMessage(w, http.StatusNotFound, "Not found")
}
