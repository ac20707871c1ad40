package mocks

import (
	"context"
	"time"

	"github.com/rpggio/ctxsnap/internal/domain/activity"
	"github.com/rpggio/ctxsnap/internal/domain/snapshot"
	"github.com/stretchr/testify/mock"
)

// SnapshotRepository is a mock for snapshot.Repository.
type SnapshotRepository struct {
	mock.Mock
}

func (m *SnapshotRepository) Create(ctx context.Context, snap *snapshot.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

func (m *SnapshotRepository) Get(ctx context.Context, id string) (*snapshot.Snapshot, error) {
	args := m.Called(ctx, id)
	if snap, ok := args.Get(0).(*snapshot.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SnapshotRepository) List(ctx context.Context, opts snapshot.ListOptions) ([]snapshot.Snapshot, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]snapshot.Snapshot); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SnapshotRepository) Update(ctx context.Context, id string, patch snapshot.Patch, updatedAt time.Time) (*snapshot.Snapshot, error) {
	args := m.Called(ctx, id, patch, updatedAt)
	if snap, ok := args.Get(0).(*snapshot.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SnapshotRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
