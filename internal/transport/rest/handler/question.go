package handler

import (
	"net/http"

	"medeval/internal/service"

	"go.uber.org/zap"
)

// QuestionHandler handles question selection and attempt endpoints
type QuestionHandler struct {
	questionSvc *service.QuestionService
	logger      *zap.Logger
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionSvc *service.QuestionService, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{questionSvc: questionSvc, logger: logger}
}

type attemptRequest struct {
	QuestionID string `json:"questionId"`
}

type attemptResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Batch handles GET /api/questions?limit=N
func (h *QuestionHandler) Batch(w http.ResponseWriter, r *http.Request) {
	limit := service.ParseLimit(r.URL.Query().Get("limit"))

	resp, err := h.questionSvc.SelectBatch(r.Context(), limit)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to fetch questions")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// RecordAttempt handles PATCH /api/questions
func (h *QuestionHandler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	var req attemptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.questionSvc.RecordAttempt(r.Context(), req.QuestionID); err != nil {
		writeServiceError(w, h.logger, err, "Failed to update question")
		return
	}
	writeJSON(w, http.StatusOK, attemptResponse{Success: true, Message: "answeredTimes updated"})
}

// List handles GET /api/admin/questions?page=P&limit=N
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := service.ParsePage(q.Get("page"), q.Get("limit"))

	resp, err := h.questionSvc.ListPage(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to fetch questions")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
