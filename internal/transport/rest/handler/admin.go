package handler

import (
	"context"
	"fmt"
	"net/http"

	"medeval/internal/service"

	"go.uber.org/zap"
)

// AdminHandler handles the admin overview and CSV exports
type AdminHandler struct {
	exportSvc *service.ExportService
	logger    *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(exportSvc *service.ExportService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{exportSvc: exportSvc, logger: logger}
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.exportSvc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to fetch data")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ExportAnnotators handles GET /api/admin/export/annotators.csv
func (h *AdminHandler) ExportAnnotators(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.exportSvc.AnnotatorsCSV)
}

// ExportResults handles GET /api/admin/export/results.csv
func (h *AdminHandler) ExportResults(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, h.exportSvc.ResultsCSV)
}

func (h *AdminHandler) export(w http.ResponseWriter, r *http.Request, build func(context.Context) (*service.ExportResult, error)) {
	res, err := build(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to export data")
		return
	}
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Data)
}
