package snapshot

import (
	"encoding/json"
	"time"
)

// Status represents where a piece of work currently stands
type Status string

const (
	StatusActive   Status = "active"
	StatusPaused   Status = "paused"
	StatusComplete Status = "complete"
)

// Statuses lists every allowed status in display order.
var Statuses = []Status{StatusActive, StatusPaused, StatusComplete}

// Valid reports whether s is one of the allowed statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusComplete:
		return true
	}
	return false
}

// ParseStatus converts raw input into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", invalidStatusError()
	}
	return s, nil
}

// Snapshot is a saved record of in-progress work context
type Snapshot struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Notes     string         `json:"notes"`
	Status    Status         `json:"status"`
	URLs      []string       `json:"urls"`
	Files     []FileLocation `json:"files"`
	Tags      []string       `json:"tags"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// FileLocation points at a position inside a source file.
// Line and Column are 1-based; zero means unknown.
type FileLocation struct {
	Path   string `json:"path" validate:"required"`
	Line   int    `json:"line" validate:"gte=0"`
	Column int    `json:"column" validate:"gte=0"`
}

// UnmarshalJSON accepts the legacy "col" key as an alias for "column".
func (f *FileLocation) UnmarshalJSON(data []byte) error {
	var raw struct {
		Path   string `json:"path"`
		Line   int    `json:"line"`
		Column *int   `json:"column"`
		Col    *int   `json:"col"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Path = raw.Path
	f.Line = raw.Line
	f.Column = 0
	switch {
	case raw.Column != nil:
		f.Column = *raw.Column
	case raw.Col != nil:
		f.Column = *raw.Col
	}
	return nil
}
