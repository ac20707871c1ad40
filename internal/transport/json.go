package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/ctxsnap/internal/domain/activity"
	"github.com/rpggio/ctxsnap/internal/domain/snapshot"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// errBadRequest marks malformed request input that never reached a service.
var errBadRequest = errors.New("bad request")

type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }
func (e *requestError) Unwrap() error { return errBadRequest }

func badRequest(format string, args ...any) error {
	return &requestError{msg: fmt.Sprintf(format, args...)}
}

type dataEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataEnvelope{Data: data})
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorEnvelope{Error: msg})
}

// writeError maps domain errors to status codes. Unknown errors are logged
// and reported as a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *snapshot.ValidationError
	var rerr *requestError

	switch {
	case errors.As(err, &verr):
		writeErrorMessage(w, http.StatusBadRequest, verr.Message)
	case errors.As(err, &rerr):
		writeErrorMessage(w, http.StatusBadRequest, rerr.msg)
	case errors.Is(err, snapshot.ErrInvalidInput), errors.Is(err, activity.ErrInvalidInput):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, snapshot.ErrSnapshotNotFound):
		writeErrorMessage(w, http.StatusNotFound, "Snapshot not found")
	default:
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		writeErrorMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON reads a size-capped JSON body into dst. An empty body is
// treated as {} and leaves dst untouched. Anything after the first value
// is rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		// Only one JSON value is allowed.
		if err = dec.Decode(&struct{}{}); errors.Is(err, io.EOF) {
			return nil
		}
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return badRequest("Request body too large")
	}
	return badRequest("Invalid JSON body")
}
