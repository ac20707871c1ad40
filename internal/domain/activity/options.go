package activity

const (
	// DefaultLimit is used when no limit is requested.
	DefaultLimit = 50
	// MaxLimit caps how many entries a single listing returns.
	MaxLimit = 200
)

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	SnapshotID   *string
	ActivityType *ActivityType
	Limit        int
}
