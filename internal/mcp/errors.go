package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/ctxsnap/internal/domain/activity"
	"github.com/rpggio/ctxsnap/internal/domain/snapshot"
)

// Error codes reported in tool error results.
const (
	CodeSnapshotNotFound = "SNAPSHOT_NOT_FOUND"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInternal         = "INTERNAL"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Field        string `json:"field,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors become
// INTERNAL without exposing their text.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var verr *snapshot.ValidationError
	switch {
	case errors.As(err, &verr):
		return &APIError{Code: CodeInvalidInput, Message: verr.Message, Field: verr.Field}
	case errors.Is(err, snapshot.ErrInvalidInput), errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: CodeInvalidInput, Message: err.Error()}
	case errors.Is(err, snapshot.ErrSnapshotNotFound):
		return &APIError{Code: CodeSnapshotNotFound, Message: "snapshot not found", RecoveryHint: "Call list_snapshots to find a valid id"}
	default:
		return &APIError{Code: CodeInternal, Message: "internal error"}
	}
}

func errorResult(apiErr *APIError) *sdkmcp.CallToolResult {
	data, err := json.Marshal(apiErr)
	if err != nil {
		data = []byte(apiErr.Error())
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}
