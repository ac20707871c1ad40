package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeSnapshotCreated ActivityType = "snapshot_created"
	TypeSnapshotUpdated ActivityType = "snapshot_updated"
	TypeSnapshotDeleted ActivityType = "snapshot_deleted"
)

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	switch t {
	case TypeSnapshotCreated, TypeSnapshotUpdated, TypeSnapshotDeleted:
		return true
	}
	return false
}

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	SnapshotID   string       `json:"snapshotId"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"createdAt"`
}
