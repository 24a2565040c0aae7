// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	service "github.com/hammah12/SalesDash/internal/app"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Snapshot returns the latest published snapshot, nil before the
	// first successful cycle.
	Snapshot() *Snapshot

	// Refresh runs one cycle now, joining any in-flight one.
	Refresh(ctx context.Context) error

	// LastError describes the most recent cycle failure, empty when healthy.
	LastError() string

	// CurrentSources and Reconfigure expose the spreadsheet configuration.
	CurrentSources() Sources
	Reconfigure(ctx context.Context, src Sources) error

	// ExportRepMonthly streams the rep monthly table as CSV.
	ExportRepMonthly(w io.Writer) error
}

// Snapshot mirrors the read shape returned by dashboard queries.
type Snapshot = service.Snapshot

// Sources mirrors the spreadsheet configuration shape.
type Sources = service.Sources

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	dashboardHandler *DashboardHandler
	refreshHandler   *RefreshHandler
	exportHandler    *ExportHandler
	configHandler    *ConfigHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		dashboardHandler: NewDashboardHandler(deps),
		refreshHandler:   NewRefreshHandler(deps),
		exportHandler:    NewExportHandler(deps),
		configHandler:    NewConfigHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/dashboard", MetricsMiddleware(s.dashboardHandler.HandleGetDashboard, "dashboard"))
	mux.HandleFunc("/refresh", MetricsMiddleware(s.refreshHandler.HandlePostRefresh, "refresh"))
	mux.HandleFunc("/export", MetricsMiddleware(s.exportHandler.HandleGetExport, "export"))
	mux.HandleFunc("/config", MetricsMiddleware(s.configHandler.HandleConfig, "config"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
