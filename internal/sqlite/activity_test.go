package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/ctxsnap/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogAndList(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()

	first := &activity.ActivityEntry{
		SnapshotID:   "s1",
		ActivityType: activity.TypeSnapshotCreated,
		Summary:      "created",
		CreatedAt:    baseTime,
	}
	require.NoError(t, repo.Log(ctx, first))
	require.NotZero(t, first.ID)

	second := &activity.ActivityEntry{
		SnapshotID:   "s1",
		ActivityType: activity.TypeSnapshotUpdated,
		Summary:      "updated",
		Details:      `{"fields":["notes"]}`,
		CreatedAt:    baseTime.Add(time.Minute),
	}
	require.NoError(t, repo.Log(ctx, second))

	other := &activity.ActivityEntry{
		SnapshotID:   "s2",
		ActivityType: activity.TypeSnapshotCreated,
		Summary:      "created other",
		CreatedAt:    baseTime.Add(2 * time.Minute),
	}
	require.NoError(t, repo.Log(ctx, other))

	all, err := repo.List(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "s2", all[0].SnapshotID)
	require.Equal(t, `{"fields":["notes"]}`, all[1].Details)
	require.True(t, baseTime.Equal(all[2].CreatedAt))

	snapshotID := "s1"
	scoped, err := repo.List(ctx, activity.ListActivityOptions{SnapshotID: &snapshotID})
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	require.Equal(t, activity.TypeSnapshotUpdated, scoped[0].ActivityType)

	created := activity.TypeSnapshotCreated
	byType, err := repo.List(ctx, activity.ListActivityOptions{ActivityType: &created, Limit: 1})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	require.Equal(t, "s2", byType[0].SnapshotID)
}

func TestActivityRepository_LogStampsMissingTime(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)

	entry := &activity.ActivityEntry{
		SnapshotID:   "s1",
		ActivityType: activity.TypeSnapshotDeleted,
		Summary:      "deleted",
	}
	require.NoError(t, repo.Log(context.Background(), entry))
	require.False(t, entry.CreatedAt.IsZero())
}

func TestActivityRepository_ListEmpty(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)

	entries, err := repo.List(context.Background(), activity.ListActivityOptions{Limit: 10})
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)
}
