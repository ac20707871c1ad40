// Package testserver runs the full HTTP stack over an in-memory database.
package testserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpggio/ctxsnap/internal/domain/activity"
	"github.com/rpggio/ctxsnap/internal/domain/snapshot"
	"github.com/rpggio/ctxsnap/internal/mcp"
	"github.com/rpggio/ctxsnap/internal/sqlite"
	"github.com/rpggio/ctxsnap/internal/transport"
	"github.com/rpggio/ctxsnap/internal/web"
	"github.com/stretchr/testify/require"
)

// CORSOrigin is the origin the test server allows.
const CORSOrigin = "http://localhost:5173"

type TestServer struct {
	Server    *httptest.Server
	Handler   http.Handler
	DB        *sqlite.DB
	Snapshots *snapshot.Service
	Activity  *activity.Service
}

// New starts a server with the REST API, the UI and MCP over HTTP.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), nil)
	snapshotSvc := snapshot.NewService(sqlite.NewSnapshotRepository(db), activitySvc, nil)

	mcpServer := mcp.NewServer(mcp.Config{Snapshots: snapshotSvc, Activity: activitySvc})

	router := transport.NewServer(transport.Services{
		Snapshots: snapshotSvc,
		Activity:  activitySvc,
	}, transport.Options{
		CORSOrigin: CORSOrigin,
		MCPHandler: mcp.NewHTTPHandler(mcpServer),
		UI:         web.Handler(),
	})
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:    server,
		Handler:   router,
		DB:        db,
		Snapshots: snapshotSvc,
		Activity:  activitySvc,
	}
}

// URL returns the absolute URL for path.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}

// Do sends a request. body may be nil, a string sent verbatim, or any value
// encoded as JSON. It returns the response and its fully read body.
func (ts *TestServer) Do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL(path), reader)
	require.NoError(t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

// DecodeData unwraps a {"data": ...} envelope into T.
func DecodeData[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return env.Data
}

// DecodeError returns the message of an {"error": ...} envelope.
func DecodeError(t *testing.T, raw []byte) string {
	t.Helper()
	var env struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return env.Error
}
