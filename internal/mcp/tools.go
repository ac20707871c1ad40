package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/ctxsnap/internal/domain/activity"
	"github.com/rpggio/ctxsnap/internal/domain/snapshot"
)

type fileInput struct {
	Path   string `json:"path" jsonschema:"file path, relative to the project root"`
	Line   int    `json:"line,omitempty" jsonschema:"1-based line number, 0 or omitted when unknown"`
	Column int    `json:"column,omitempty" jsonschema:"1-based column number, 0 or omitted when unknown"`
}

type listSnapshotsInput struct {
	Status string `json:"status,omitempty" jsonschema:"only return snapshots with this status: active, paused or complete"`
}

type getSnapshotInput struct {
	ID string `json:"id" jsonschema:"snapshot id"`
}

type createSnapshotInput struct {
	Name  string      `json:"name" jsonschema:"short task name"`
	Notes string      `json:"notes,omitempty" jsonschema:"where work stopped and what comes next"`
	URLs  []string    `json:"urls,omitempty" jsonschema:"absolute URLs related to the task"`
	Files []fileInput `json:"files,omitempty" jsonschema:"file locations related to the task"`
	Tags  []string    `json:"tags,omitempty" jsonschema:"free-form labels"`
}

// updateSnapshotInput distinguishes omitted lists (nil) from empty ones.
type updateSnapshotInput struct {
	ID     string      `json:"id" jsonschema:"snapshot id"`
	Name   *string     `json:"name,omitempty" jsonschema:"new name"`
	Notes  *string     `json:"notes,omitempty" jsonschema:"replacement notes"`
	Status *string     `json:"status,omitempty" jsonschema:"active, paused or complete"`
	URLs   []string    `json:"urls,omitempty" jsonschema:"replacement URL list; pass [] to clear"`
	Files  []fileInput `json:"files,omitempty" jsonschema:"replacement file list; pass [] to clear"`
	Tags   []string    `json:"tags,omitempty" jsonschema:"replacement tag list; pass [] to clear"`
}

type deleteSnapshotInput struct {
	ID string `json:"id" jsonschema:"snapshot id"`
}

type recentActivityInput struct {
	SnapshotID string `json:"snapshot_id,omitempty" jsonschema:"only return activity for this snapshot"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum entries to return, default 50, at most 200"`
}

type tools struct {
	snapshots SnapshotService
	activity  ActivityService
	logger    *slog.Logger
}

func (t *tools) register(server *sdkmcp.Server) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_snapshots",
		Description: "List saved snapshots, newest first, optionally filtered by status",
	}, t.listSnapshots)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_snapshot",
		Description: "Get a snapshot by id",
	}, t.getSnapshot)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_snapshot",
		Description: "Save the current state of a task so it can be resumed later",
	}, t.createSnapshot)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_snapshot",
		Description: "Change some fields of a snapshot; omitted fields are left unchanged",
	}, t.updateSnapshot)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_snapshot",
		Description: "Delete a snapshot",
	}, t.deleteSnapshot)

	if t.activity != nil {
		sdkmcp.AddTool(server, &sdkmcp.Tool{
			Name:        "recent_activity",
			Description: "List recent snapshot changes, newest first",
		}, t.recentActivity)
	}
}

func (t *tools) listSnapshots(ctx context.Context, _ *sdkmcp.CallToolRequest, in listSnapshotsInput) (*sdkmcp.CallToolResult, any, error) {
	var opts snapshot.ListOptions
	if in.Status != "" {
		status, err := snapshot.ParseStatus(in.Status)
		if err != nil {
			return t.fail("list_snapshots", err)
		}
		opts.Status = &status
	}

	snaps, err := t.snapshots.List(ctx, opts)
	if err != nil {
		return t.fail("list_snapshots", err)
	}
	return jsonResult(snaps)
}

func (t *tools) getSnapshot(ctx context.Context, _ *sdkmcp.CallToolRequest, in getSnapshotInput) (*sdkmcp.CallToolResult, any, error) {
	snap, err := t.snapshots.Get(ctx, in.ID)
	if err != nil {
		return t.fail("get_snapshot", err)
	}
	return jsonResult(snap)
}

func (t *tools) createSnapshot(ctx context.Context, _ *sdkmcp.CallToolRequest, in createSnapshotInput) (*sdkmcp.CallToolResult, any, error) {
	snap, err := t.snapshots.Create(ctx, snapshot.CreateRequest{
		Name:  in.Name,
		Notes: in.Notes,
		URLs:  in.URLs,
		Files: toFileLocations(in.Files),
		Tags:  in.Tags,
	})
	if err != nil {
		return t.fail("create_snapshot", err)
	}
	return jsonResult(snap)
}

func (t *tools) updateSnapshot(ctx context.Context, _ *sdkmcp.CallToolRequest, in updateSnapshotInput) (*sdkmcp.CallToolResult, any, error) {
	patch := snapshot.Patch{
		Name:  in.Name,
		Notes: in.Notes,
	}
	if in.Status != nil {
		status, err := snapshot.ParseStatus(*in.Status)
		if err != nil {
			return t.fail("update_snapshot", err)
		}
		patch.Status = &status
	}
	if in.URLs != nil {
		patch.URLs = &in.URLs
	}
	if in.Files != nil {
		files := toFileLocations(in.Files)
		patch.Files = &files
	}
	if in.Tags != nil {
		patch.Tags = &in.Tags
	}

	snap, err := t.snapshots.Update(ctx, in.ID, patch)
	if err != nil {
		return t.fail("update_snapshot", err)
	}
	return jsonResult(snap)
}

func (t *tools) deleteSnapshot(ctx context.Context, _ *sdkmcp.CallToolRequest, in deleteSnapshotInput) (*sdkmcp.CallToolResult, any, error) {
	deleted, err := t.snapshots.Delete(ctx, in.ID)
	if err != nil {
		return t.fail("delete_snapshot", err)
	}
	if !deleted {
		return t.fail("delete_snapshot", snapshot.ErrSnapshotNotFound)
	}
	return jsonResult(map[string]any{"id": in.ID, "deleted": true})
}

func (t *tools) recentActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in recentActivityInput) (*sdkmcp.CallToolResult, any, error) {
	opts := activity.ListActivityOptions{Limit: in.Limit}
	if in.SnapshotID != "" {
		opts.SnapshotID = &in.SnapshotID
	}

	entries, err := t.activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return t.fail("recent_activity", err)
	}
	return jsonResult(entries)
}

// fail converts err into a tool error result. Internal errors are logged
// because their text is not returned to the caller.
func (t *tools) fail(tool string, err error) (*sdkmcp.CallToolResult, any, error) {
	apiErr := MapError(err)
	if apiErr.Code == CodeInternal {
		t.logger.Error("mcp tool failed", "tool", tool, "error", err)
	}
	return errorResult(apiErr), nil, nil
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encoding result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func toFileLocations(files []fileInput) []snapshot.FileLocation {
	if files == nil {
		return nil
	}
	out := make([]snapshot.FileLocation, 0, len(files))
	for _, f := range files {
		out = append(out, snapshot.FileLocation{Path: f.Path, Line: f.Line, Column: f.Column})
	}
	return out
}
