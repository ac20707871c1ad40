package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/ctxsnap/internal/domain/snapshot"
	"github.com/rpggio/ctxsnap/internal/repository"
)

const snapshotColumns = `id, name, notes, status, urls, files, tags, created_at, updated_at`

// SnapshotRepository implements snapshot.Repository for SQLite
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create inserts a fully populated snapshot
func (r *SnapshotRepository) Create(ctx context.Context, snap *snapshot.Snapshot) error {
	urls, err := encodeList(snap.URLs)
	if err != nil {
		return err
	}
	files, err := encodeList(snap.Files)
	if err != nil {
		return err
	}
	tags, err := encodeList(snap.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO snapshots (` + snapshotColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		snap.ID,
		snap.Name,
		snap.Notes,
		snap.Status,
		urls,
		files,
		tags,
		formatTime(snap.CreatedAt),
		formatTime(snap.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}

	return nil
}

// Get retrieves a snapshot by ID
func (r *SnapshotRepository) Get(ctx context.Context, id string) (*snapshot.Snapshot, error) {
	return r.get(ctx, r.db.DB, id)
}

// List returns snapshots newest first, optionally filtered by status
func (r *SnapshotRepository) List(ctx context.Context, opts snapshot.ListOptions) ([]snapshot.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots`
	var args []any
	if opts.Status != nil {
		query += ` WHERE status = ?`
		args = append(args, *opts.Status)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	snaps := []snapshot.Snapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, *snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}

	return snaps, nil
}

// Update writes the fields present in patch and stamps updated_at, then
// returns the stored row. Both happen in one transaction.
func (r *SnapshotRepository) Update(ctx context.Context, id string, patch snapshot.Patch, updatedAt time.Time) (*snapshot.Snapshot, error) {
	var sets []string
	var args []any

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *patch.Notes)
	}
	if patch.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *patch.Status)
	}
	if patch.URLs != nil {
		encoded, err := encodeList(*patch.URLs)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "urls = ?")
		args = append(args, encoded)
	}
	if patch.Files != nil {
		encoded, err := encodeList(*patch.Files)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "files = ?")
		args = append(args, encoded)
	}
	if patch.Tags != nil {
		encoded, err := encodeList(*patch.Tags)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "tags = ?")
		args = append(args, encoded)
	}
	if len(sets) == 0 {
		return r.Get(ctx, id)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// updated_at never drops below created_at, even if the clock steps back.
	sets = append(sets, "updated_at = MAX(created_at, ?)")
	args = append(args, formatTime(updatedAt), id)
	query := `UPDATE snapshots SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update snapshot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, repository.ErrNotFound
	}

	snap, err := r.get(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return snap, nil
}

// Delete removes a snapshot and reports whether a row was removed
func (r *SnapshotRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete snapshot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SnapshotRepository) get(ctx context.Context, q queryRower, id string) (*snapshot.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots WHERE id = ?`

	snap, err := scanSnapshot(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return snap, nil
}

func scanSnapshot(row rowScanner) (*snapshot.Snapshot, error) {
	var snap snapshot.Snapshot
	var urls, files, tags sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&snap.ID,
		&snap.Name,
		&snap.Notes,
		&snap.Status,
		&urls,
		&files,
		&tags,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	snap.URLs = decodeList[string](urls.String)
	snap.Files = decodeList[snapshot.FileLocation](files.String)
	snap.Tags = decodeList[string](tags.String)

	if snap.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if snap.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &snap, nil
}
