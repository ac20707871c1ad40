package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `ctxsnap saves the state of unfinished work as snapshots so it can be resumed later.

A snapshot has a name, free-form notes, a status (active, paused, complete),
URLs, file locations (path, line, column) and tags.

Typical workflow:
1) Before switching away from a task, call create_snapshot with a short name and
   notes describing where you stopped and the next step.
2) To resume, call list_snapshots (optionally status=active) and get_snapshot.
3) Keep the snapshot current with update_snapshot; only the fields you pass change.
4) Mark finished work with update_snapshot status=complete, or delete_snapshot.

recent_activity shows what changed recently. Full guide: ctxsnap://docs/guide
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "ctxsnap://docs/guide",
		Name:        "guide",
		Title:       "ctxsnap guide",
		Description: "How snapshots are structured and how to use the snapshot tools.",
		Content: `# ctxsnap guide

## Snapshot fields

| field | notes |
|---|---|
| id | generated, immutable |
| name | required, trimmed, never blank |
| notes | free text, defaults to "" |
| status | active, paused or complete; new snapshots are active |
| urls | absolute URLs (scheme and host), order preserved |
| files | {path, line, column}; line and column are 1-based, 0 means unknown |
| tags | non-blank, at most 64 characters each |
| createdAt / updatedAt | RFC 3339 UTC timestamps |

## Tools

- list_snapshots: newest first. Pass status to filter.
- get_snapshot: fetch one snapshot by id.
- create_snapshot: name is required, everything else is optional.
- update_snapshot: partial update. Omitted fields are left alone. Passing an
  empty list clears it. A call with no fields returns the snapshot unchanged.
- delete_snapshot: removes a snapshot. Unknown ids report SNAPSHOT_NOT_FOUND.
- recent_activity: the mutation log, newest first, optionally for one snapshot.

## Errors

Failed calls return isError with a JSON body {code, message}:

- INVALID_INPUT: a field was rejected. The message names it.
- SNAPSHOT_NOT_FOUND: the id does not exist. Call list_snapshots.
- INTERNAL: storage failure. Retrying later may help.

## Writing good snapshots

- Name the task, not the tool: "Fix token refresh" beats "auth.go".
- Put the very next action first in notes.
- Add the file and line you were editing so the position can be restored.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
