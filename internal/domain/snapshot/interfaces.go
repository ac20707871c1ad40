package snapshot

import (
	"context"
	"time"

	"github.com/rpggio/ctxsnap/internal/domain/activity"
)

// Repository provides persistence for snapshots.
type Repository interface {
	Create(ctx context.Context, snap *Snapshot) error
	Get(ctx context.Context, id string) (*Snapshot, error)
	List(ctx context.Context, opts ListOptions) ([]Snapshot, error)
	Update(ctx context.Context, id string, patch Patch, updatedAt time.Time) (*Snapshot, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ActivityLogger records snapshot mutations. *activity.Service satisfies it.
type ActivityLogger interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}
