package transport

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/ctxsnap/internal/domain/activity"
	"github.com/rpggio/ctxsnap/internal/domain/snapshot"
)

type createSnapshotRequest struct {
	Name  string                  `json:"name"`
	Notes string                  `json:"notes"`
	URLs  []string                `json:"urls"`
	Files []snapshot.FileLocation `json:"files"`
	Tags  []string                `json:"tags"`
}

// updateSnapshotRequest lists the only fields a PATCH may change.
// Unknown keys are ignored.
type updateSnapshotRequest struct {
	Name   *string                  `json:"name"`
	Notes  *string                  `json:"notes"`
	Status *string                  `json:"status"`
	URLs   *[]string                `json:"urls"`
	Files  *[]snapshot.FileLocation `json:"files"`
	Tags   *[]string                `json:"tags"`
}

func (req updateSnapshotRequest) patch() (snapshot.Patch, error) {
	p := snapshot.Patch{
		Name:  req.Name,
		Notes: req.Notes,
		URLs:  req.URLs,
		Files: req.Files,
		Tags:  req.Tags,
	}
	if req.Status != nil {
		status, err := snapshot.ParseStatus(*req.Status)
		if err != nil {
			return snapshot.Patch{}, err
		}
		p.Status = &status
	}
	return p, nil
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	var opts snapshot.ListOptions
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := snapshot.ParseStatus(raw)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.Status = &status
	}

	snaps, err := s.snapshots.List(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, snaps)
}

func (s *Server) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var req createSnapshotRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	snap, err := s.snapshots.Create(r.Context(), snapshot.CreateRequest{
		Name:  req.Name,
		Notes: req.Notes,
		URLs:  req.URLs,
		Files: req.Files,
		Tags:  req.Tags,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, snap)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshots.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, snap)
}

func (s *Server) handleUpdateSnapshot(w http.ResponseWriter, r *http.Request) {
	var req updateSnapshotRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	patch, err := req.patch()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	snap, err := s.snapshots.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.snapshots.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !deleted {
		s.writeError(w, r, snapshot.ErrSnapshotNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListActivity(w http.ResponseWriter, r *http.Request) {
	if s.activity == nil {
		writeData(w, http.StatusOK, []activity.ActivityEntry{})
		return
	}
	q := r.URL.Query()

	var opts activity.ListActivityOptions
	if id := q.Get("snapshotId"); id != "" {
		opts.SnapshotID = &id
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			s.writeError(w, r, badRequest("limit must be a non-negative integer"))
			return
		}
		opts.Limit = limit
	}

	entries, err := s.activity.GetRecentActivity(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, entries)
}
