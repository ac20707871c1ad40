package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/ctxsnap/internal/domain/snapshot"
	"github.com/rpggio/ctxsnap/internal/repository"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newSnapshot(id, name string, created time.Time) *snapshot.Snapshot {
	return &snapshot.Snapshot{
		ID:        id,
		Name:      name,
		Notes:     "",
		Status:    snapshot.StatusActive,
		URLs:      []string{},
		Files:     []snapshot.FileLocation{},
		Tags:      []string{},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestSnapshotRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	snap := &snapshot.Snapshot{
		ID:     "s1",
		Name:   "Debug auth flow",
		Notes:  "Token refresh fails after 1h",
		Status: snapshot.StatusActive,
		URLs:   []string{"https://example.com/issue/42"},
		Files: []snapshot.FileLocation{
			{Path: "src/auth.go", Line: 42, Column: 7},
			{Path: "README.md"},
		},
		Tags:      []string{"auth", "bug"},
		CreatedAt: baseTime.Add(123 * time.Nanosecond),
		UpdatedAt: baseTime.Add(123 * time.Nanosecond),
	}
	require.NoError(t, repo.Create(ctx, snap))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, snap, got)
}

func TestSnapshotRepository_CreateNilListsStoredEmpty(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	snap := newSnapshot("s1", "bare", baseTime)
	snap.URLs, snap.Files, snap.Tags = nil, nil, nil
	require.NoError(t, repo.Create(ctx, snap))

	var urls, files, tags string
	require.NoError(t, db.QueryRow(`SELECT urls, files, tags FROM snapshots WHERE id = ?`, "s1").Scan(&urls, &files, &tags))
	require.Equal(t, "[]", urls)
	require.Equal(t, "[]", files)
	require.Equal(t, "[]", tags)
}

func TestSnapshotRepository_CreateDuplicateID(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSnapshot("s1", "one", baseTime)))
	require.Error(t, repo.Create(ctx, newSnapshot("s1", "two", baseTime)))
}

func TestSnapshotRepository_GetNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSnapshotRepository_ListOrderAndFilter(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSnapshot("old", "old", baseTime)))
	paused := newSnapshot("mid", "mid", baseTime.Add(time.Minute))
	paused.Status = snapshot.StatusPaused
	require.NoError(t, repo.Create(ctx, paused))
	require.NoError(t, repo.Create(ctx, newSnapshot("new", "new", baseTime.Add(2*time.Minute))))

	all, err := repo.List(ctx, snapshot.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"new", "mid", "old"}, ids(all))

	status := snapshot.StatusPaused
	filtered, err := repo.List(ctx, snapshot.ListOptions{Status: &status})
	require.NoError(t, err)
	require.Equal(t, []string{"mid"}, ids(filtered))

	complete := snapshot.StatusComplete
	none, err := repo.List(ctx, snapshot.ListOptions{Status: &complete})
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestSnapshotRepository_ListTiesBreakByInsertOrder(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSnapshot("first", "first", baseTime)))
	require.NoError(t, repo.Create(ctx, newSnapshot("second", "second", baseTime)))

	all, err := repo.List(ctx, snapshot.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"second", "first"}, ids(all))
}

func TestSnapshotRepository_Update(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	original := newSnapshot("s1", "before", baseTime)
	original.Notes = "keep me"
	original.Tags = []string{"a"}
	require.NoError(t, repo.Create(ctx, original))

	name := "after"
	status := snapshot.StatusComplete
	files := []snapshot.FileLocation{{Path: "main.go", Line: 1}}
	later := baseTime.Add(time.Hour)

	updated, err := repo.Update(ctx, "s1", snapshot.Patch{Name: &name, Status: &status, Files: &files}, later)
	require.NoError(t, err)
	require.Equal(t, "after", updated.Name)
	require.Equal(t, "keep me", updated.Notes)
	require.Equal(t, snapshot.StatusComplete, updated.Status)
	require.Equal(t, files, updated.Files)
	require.Equal(t, []string{"a"}, updated.Tags)
	require.True(t, baseTime.Equal(updated.CreatedAt))
	require.True(t, later.Equal(updated.UpdatedAt))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, updated, got)
}

func TestSnapshotRepository_UpdateClearsLists(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	original := newSnapshot("s1", "lists", baseTime)
	original.URLs = []string{"https://example.com"}
	require.NoError(t, repo.Create(ctx, original))

	empty := []string{}
	updated, err := repo.Update(ctx, "s1", snapshot.Patch{URLs: &empty}, baseTime.Add(time.Second))
	require.NoError(t, err)
	require.NotNil(t, updated.URLs)
	require.Empty(t, updated.URLs)
}

func TestSnapshotRepository_UpdateNeverPrecedesCreation(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSnapshot("s1", "clock", baseTime)))

	notes := "clock stepped back"
	updated, err := repo.Update(ctx, "s1", snapshot.Patch{Notes: &notes}, baseTime.Add(-time.Hour))
	require.NoError(t, err)
	require.True(t, baseTime.Equal(updated.UpdatedAt))
}

func TestSnapshotRepository_UpdateNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)

	notes := "x"
	_, err := repo.Update(context.Background(), "missing", snapshot.Patch{Notes: &notes}, baseTime)
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Update(context.Background(), "missing", snapshot.Patch{}, baseTime)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSnapshotRepository_EmptyPatchLeavesRowUntouched(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSnapshot("s1", "same", baseTime)))

	got, err := repo.Update(ctx, "s1", snapshot.Patch{}, baseTime.Add(time.Hour))
	require.NoError(t, err)
	require.True(t, baseTime.Equal(got.UpdatedAt))
}

func TestSnapshotRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newSnapshot("s1", "gone", baseTime)))

	deleted, err := repo.Delete(ctx, "s1")
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = repo.Delete(ctx, "s1")
	require.NoError(t, err)
	require.False(t, deleted)

	_, err = repo.Get(ctx, "s1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSnapshotRepository_MalformedListColumnsDecodeEmpty(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO snapshots (id, name, urls, files, tags, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"s1", "broken", "not json", "", "null", formatTime(baseTime), formatTime(baseTime))
	require.NoError(t, err)

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, []string{}, got.URLs)
	require.Equal(t, []snapshot.FileLocation{}, got.Files)
	require.Equal(t, []string{}, got.Tags)

	all, err := repo.List(ctx, snapshot.ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestSnapshotRepository_LegacyColumnKey(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSnapshotRepository(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO snapshots (id, name, files, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		"s1", "legacy", `[{"path":"app.js","line":10,"col":4}]`, formatTime(baseTime), formatTime(baseTime))
	require.NoError(t, err)

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, []snapshot.FileLocation{{Path: "app.js", Line: 10, Column: 4}}, got.Files)
}

func ids(snaps []snapshot.Snapshot) []string {
	out := make([]string, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, s.ID)
	}
	return out
}
