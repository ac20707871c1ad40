// Package seed loads sample snapshots for local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/ctxsnap/internal/domain/snapshot"
)

// Creator creates snapshots.
type Creator interface {
	Create(ctx context.Context, req snapshot.CreateRequest) (*snapshot.Snapshot, error)
}

// Samples returns the sample snapshots in insertion order.
func Samples() []snapshot.CreateRequest {
	return []snapshot.CreateRequest{
		{
			Name:  "Auth refactor: JWT middleware",
			Notes: "Next: add refresh token rotation. Blocked on security review.",
			URLs:  []string{"https://github.com/myorg/api/pull/42", "https://jwt.io/#debugger"},
			Files: []snapshot.FileLocation{{Path: "/src/middleware/auth.js", Line: 87, Column: 4}},
			Tags:  []string{"auth", "backend"},
		},
		{
			Name:  "Dashboard perf: lazy-load images",
			Notes: "IntersectionObserver works. Test Safari. Bundle: 420 -> 310 kb.",
			URLs:  []string{"https://developer.mozilla.org/en-US/docs/Web/API/IntersectionObserver"},
			Files: []snapshot.FileLocation{{Path: "/src/components/Dashboard.jsx", Line: 45, Column: 10}},
			Tags:  []string{"performance", "frontend"},
		},
		{
			Name:  "Hotfix: null pointer in payment webhook",
			Notes: "Fixed. Deployed 16:45. Root cause: missing guard on event.data.object.customer.",
			URLs:  []string{"https://dashboard.stripe.com/webhooks"},
			Files: []snapshot.FileLocation{{Path: "/src/webhooks/stripe.js", Line: 102, Column: 7}},
			Tags:  []string{"hotfix", "payments"},
		},
	}
}

// Run inserts every sample and returns the stored snapshots. It stops at
// the first failure.
func Run(ctx context.Context, creator Creator, logger *slog.Logger) ([]*snapshot.Snapshot, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	samples := Samples()
	created := make([]*snapshot.Snapshot, 0, len(samples))
	for _, req := range samples {
		snap, err := creator.Create(ctx, req)
		if err != nil {
			return created, fmt.Errorf("seeding %q: %w", req.Name, err)
		}
		logger.Info("seeded snapshot", "id", snap.ID, "name", snap.Name)
		created = append(created, snap)
	}
	return created, nil
}

// ShortID returns the first eight characters of id.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
