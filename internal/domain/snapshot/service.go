package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/ctxsnap/internal/domain/activity"
	"github.com/rpggio/ctxsnap/internal/repository"
)

// Service handles snapshot business logic.
type Service struct {
	repo       Repository
	activities ActivityLogger
	logger     *slog.Logger
	now        func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new snapshot service. activities may be nil.
func NewService(repo Repository, activities ActivityLogger, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		repo:       repo,
		activities: activities,
		logger:     logger,
		now:        time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CreateRequest describes a snapshot creation request.
type CreateRequest struct {
	Name  string
	Notes string
	URLs  []string
	Files []FileLocation
	Tags  []string
}

// Create validates the request and persists a new active snapshot.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Snapshot, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	snap := &Snapshot{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Notes:     req.Notes,
		Status:    StatusActive,
		URLs:      orEmpty(req.URLs),
		Files:     orEmpty(req.Files),
		Tags:      orEmpty(req.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, snap); err != nil {
		return nil, fmt.Errorf("creating snapshot: %w", err)
	}

	s.logActivity(ctx, &activity.ActivityEntry{
		SnapshotID:   snap.ID,
		ActivityType: activity.TypeSnapshotCreated,
		Summary:      fmt.Sprintf("created snapshot %q", snap.Name),
	})

	return snap, nil
}

// List returns snapshots newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Snapshot, error) {
	if opts.Status != nil && !opts.Status.Valid() {
		return nil, invalidStatusError()
	}
	snaps, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	if snaps == nil {
		snaps = []Snapshot{}
	}
	return snaps, nil
}

// Get returns a snapshot by ID.
func (s *Service) Get(ctx context.Context, id string) (*Snapshot, error) {
	snap, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("getting snapshot: %w", err)
	}
	return snap, nil
}

// Update applies a partial update. An empty patch returns the current
// snapshot without touching updatedAt.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Snapshot, error) {
	if patch.IsEmpty() {
		return s.Get(ctx, id)
	}

	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
	}
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch, s.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("updating snapshot: %w", err)
	}

	details, _ := json.Marshal(map[string][]string{"fields": patch.Fields()})
	s.logActivity(ctx, &activity.ActivityEntry{
		SnapshotID:   updated.ID,
		ActivityType: activity.TypeSnapshotUpdated,
		Summary:      fmt.Sprintf("updated snapshot %q", updated.Name),
		Details:      string(details),
	})

	return updated, nil
}

// Delete removes a snapshot and reports whether a row was removed.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting snapshot: %w", err)
	}

	if deleted {
		s.logActivity(ctx, &activity.ActivityEntry{
			SnapshotID:   id,
			ActivityType: activity.TypeSnapshotDeleted,
			Summary:      fmt.Sprintf("deleted snapshot %s", id),
		})
	}

	return deleted, nil
}

func (s *Service) logActivity(ctx context.Context, entry *activity.ActivityEntry) {
	if s.activities == nil {
		return
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	if err := s.activities.Log(ctx, entry); err != nil {
		s.logger.Warn("failed to log activity", "snapshot_id", entry.SnapshotID, "type", entry.ActivityType, "error", err)
	}
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
