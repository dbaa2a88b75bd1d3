// Package api serves the draft review HTTP API used to approve, reject,
// and inspect the queue without touching the filesystem directly.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/faytuks/engine/internal/draft"
)

// Handler implements the review API handlers.
type Handler struct {
	drafts  *draft.Store
	version string
}

// NewHandler creates a Handler over the given draft store.
func NewHandler(drafts *draft.Store, version string) *Handler {
	return &Handler{drafts: drafts, version: version}
}

// HealthResponse is the GET /health payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Pending int    `json:"pending"`
}

// Health returns the health status and queue depth.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Pending: len(h.drafts.ListPending()),
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListDrafts handles GET /api/v1/drafts?state=pending|approved|posted.
func (h *Handler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" {
		state = string(draft.StatusPending)
	}

	var items []draft.Draft
	switch draft.Status(state) {
	case draft.StatusPending:
		items = h.drafts.ListPending()
	case draft.StatusApproved:
		items = h.drafts.ListApproved()
	case draft.StatusPosted:
		items = h.drafts.ListPosted()
	default:
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("unknown state %q", state))
		return
	}

	if items == nil {
		items = []draft.Draft{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"drafts": items, "count": len(items)})
}

// GetDraft handles GET /api/v1/drafts/{id}. The id may be a prefix.
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, ok := h.drafts.Get(id)
	if !ok {
		WriteProblem(w, r, http.StatusNotFound, "draft not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// ApproveDraft handles POST /api/v1/drafts/{id}/approve.
func (h *Handler) ApproveDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.drafts.Approve(id) {
		WriteProblem(w, r, http.StatusNotFound, "no pending draft with that id")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(draft.StatusApproved)})
}

// RejectDraft handles POST /api/v1/drafts/{id}/reject.
func (h *Handler) RejectDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.drafts.Reject(id) {
		WriteProblem(w, r, http.StatusNotFound, "no pending or approved draft with that id")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": "rejected"})
}

// attachMediaRequest is the POST /drafts/{id}/media payload.
type attachMediaRequest struct {
	Media string `json:"media"`
}

// AttachMedia handles POST /api/v1/drafts/{id}/media.
func (h *Handler) AttachMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req attachMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if req.Media == "" {
		WriteProblem(w, r, http.StatusBadRequest, "media reference required")
		return
	}

	if !h.drafts.AttachMedia(id, req.Media) {
		WriteProblem(w, r, http.StatusNotFound, "no pending or approved draft with that id")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "media": req.Media})
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"counts":            h.drafts.Stats(),
		"posted_by_pattern": h.drafts.PostedByPattern(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "component", "api", "error", err)
	}
}
