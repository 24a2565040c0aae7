package api

import (
	"context"
	"net/http"
)

// RefreshDependencies defines the interface for manual refresh triggers.
type RefreshDependencies interface {
	Refresh(ctx context.Context) error
	Snapshot() *Snapshot
}

// RefreshHandler handles out-of-band refresh requests.
type RefreshHandler struct {
	deps RefreshDependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps RefreshDependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

type refreshResponse struct {
	Status      string `json:"status"`
	CycleID     string `json:"cycle_id,omitempty"`
	RefreshedAt string `json:"refreshed_at,omitempty"`
}

// HandlePostRefresh handles POST /refresh requests. A request arriving
// while a cycle is already running joins that cycle and reports its result.
func (h *RefreshHandler) HandlePostRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_refresh"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	if err := h.deps.Refresh(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, "refresh_failed", Wrap(op, err))
		return
	}

	resp := refreshResponse{Status: "refreshed"}
	if snap := h.deps.Snapshot(); snap != nil {
		resp.CycleID = snap.CycleID
		resp.RefreshedAt = snap.RefreshedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	writeJSON(w, http.StatusOK, resp)
}
