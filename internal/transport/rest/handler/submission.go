package handler

import (
	"net/http"

	"medeval/internal/model"
	"medeval/internal/service"

	"go.uber.org/zap"
)

// SubmissionHandler handles rating submission endpoints
type SubmissionHandler struct {
	submissionSvc *service.SubmissionService
	logger        *zap.Logger
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionSvc *service.SubmissionService, logger *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc, logger: logger}
}

type submitResponse struct {
	Success   bool   `json:"success"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
}

// List handles GET /api/submissions
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.submissionSvc.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to fetch data")
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

// Create handles POST /api/submissions
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var sub model.Submission
	if err := decodeJSON(r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	receipt, err := h.submissionSvc.Record(r.Context(), &sub)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to submit data")
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{Success: true, ID: receipt.ID, Timestamp: receipt.Timestamp})
}
