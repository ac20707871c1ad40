package mcp

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// trafficLoggingMiddleware logs MCP messages at debug level. Tool calls are
// tagged with the tool name and the snapshot they target.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			attrs := messageAttrs(direction, method, req)
			logger.Debug("mcp request", append(attrs, "params", formatPayload(safeParams(req)))...)

			start := time.Now()
			result, err := next(ctx, method, req)
			if strings.HasPrefix(method, "notifications/") {
				return result, err
			}

			attrs = append(attrs, "duration", time.Since(start))
			if res, ok := result.(*sdkmcp.CallToolResult); ok && res != nil {
				attrs = append(attrs, "tool_error", res.IsError)
			}
			if err != nil {
				attrs = append(attrs, "error", err)
			}
			logger.Debug("mcp response", append(attrs, "result", formatPayload(result))...)

			return result, err
		}
	}
}

func messageAttrs(direction, method string, req sdkmcp.Request) []any {
	attrs := []any{"direction", direction, "method", method, "session_id", safeSessionID(req)}

	call, ok := req.(*sdkmcp.CallToolRequest)
	if !ok || call.Params == nil {
		return attrs
	}
	attrs = append(attrs, "tool", call.Params.Name)

	var target struct {
		ID         string `json:"id"`
		SnapshotID string `json:"snapshot_id"`
	}
	if len(call.Params.Arguments) > 0 && json.Unmarshal(call.Params.Arguments, &target) == nil {
		if id := cmp.Or(target.ID, target.SnapshotID); id != "" {
			attrs = append(attrs, "snapshot_id", id)
		}
	}
	return attrs
}

func safeSessionID(req sdkmcp.Request) (id string) {
	if req == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			id = ""
		}
	}()
	session := req.GetSession()
	if session == nil {
		return ""
	}
	return session.ID()
}

func safeParams(req sdkmcp.Request) (params any) {
	if req == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			params = nil
		}
	}()
	return req.GetParams()
}

func formatPayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	return string(data)
}
