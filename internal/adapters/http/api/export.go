package api

import (
	"errors"
	"io"
	"net/http"

	service "github.com/hammah12/SalesDash/internal/app"
)

// exportFilename is the attachment name offered to the browser.
const exportFilename = "sales-dashboard-data.csv"

// ExportDependencies defines the interface for CSV export.
type ExportDependencies interface {
	ExportRepMonthly(w io.Writer) error
}

// ExportHandler handles CSV export requests.
type ExportHandler struct {
	deps ExportDependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ExportDependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleGetExport handles GET /export requests.
func (h *ExportHandler) HandleGetExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_export"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	if err := h.deps.ExportRepMonthly(w); err != nil {
		if errors.Is(err, service.ErrNoSnapshot) {
			w.Header().Del("Content-Disposition")
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			writeError(w, http.StatusServiceUnavailable, "unavailable", NewKind(op, ErrUnavailable))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
