package api

import (
	"net/http"
)

// DashboardDependencies defines the interface for dashboard reads.
type DashboardDependencies interface {
	Snapshot() *Snapshot
	LastError() string
}

// DashboardHandler handles dashboard requests.
type DashboardHandler struct {
	deps DashboardDependencies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps DashboardDependencies) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// HandleGetDashboard handles GET /dashboard requests.
func (h *DashboardHandler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_dashboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	snap := h.deps.Snapshot()
	if snap == nil {
		err := NewKind(op, ErrUnavailable)
		if msg := h.deps.LastError(); msg != "" {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Code: "unavailable", Message: msg})
			return
		}
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
