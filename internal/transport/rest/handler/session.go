package handler

import (
	"net/http"

	"medeval/internal/model"
	"medeval/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// SessionHandler handles annotation session endpoints
type SessionHandler struct {
	sessionSvc *service.SessionService
	logger     *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc, logger: logger}
}

// Start handles POST /api/sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req model.StartSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.sessionSvc.Start(r.Context(), req.PersonalInfo)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to start session")
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// Get handles GET /api/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessionSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load session")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Answer handles POST /api/sessions/{id}/answers
func (h *SessionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req model.AnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.sessionSvc.Answer(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to record answer")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
