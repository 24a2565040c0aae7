package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// ConfigDependencies defines the interface for source configuration.
type ConfigDependencies interface {
	CurrentSources() Sources
	Reconfigure(ctx context.Context, src Sources) error
}

// ConfigHandler handles source configuration requests.
type ConfigHandler struct {
	deps ConfigDependencies
}

// NewConfigHandler creates a new config handler.
func NewConfigHandler(deps ConfigDependencies) *ConfigHandler {
	return &ConfigHandler{deps: deps}
}

// HandleConfig handles GET and PUT /config requests.
func (h *ConfigHandler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPut:
		h.handlePut(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ConfigHandler) handleGet(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.CurrentSources())
}

func (h *ConfigHandler) handlePut(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_config"

	var src Sources
	if err := json.NewDecoder(r.Body).Decode(&src); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validateSources(src); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// The new sources are stored even when the first fetch against them
	// fails; the dashboard surfaces that as its error state instead.
	if err := h.deps.Reconfigure(r.Context(), src); err != nil {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "reconfigured",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reconfigured"})
}

func validateSources(src Sources) error {
	switch {
	case strings.TrimSpace(src.BaseURL) == "":
		return errors.New("missing base_url")
	case strings.TrimSpace(src.WeeklyUploads) == "":
		return errors.New("missing weekly_uploads_gid")
	case strings.TrimSpace(src.TalkTime) == "":
		return errors.New("missing talk_time_gid")
	case strings.TrimSpace(src.Conversion) == "":
		return errors.New("missing conversion_gid")
	case strings.TrimSpace(src.LeadsGrabbed) == "":
		return errors.New("missing leads_grabbed_gid")
	case strings.TrimSpace(src.LeadsBehind) == "":
		return errors.New("missing leads_behind_gid")
	case strings.TrimSpace(src.RepMonthly) == "":
		return errors.New("missing rep_monthly_gid")
	case strings.TrimSpace(src.RepDaily) == "":
		return errors.New("missing rep_daily_gid")
	}
	return nil
}
