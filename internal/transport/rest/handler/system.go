package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler handles health, connectivity and docs endpoints
type SystemHandler struct {
	store  Pinger
	docs   string
	logger *zap.Logger
}

// NewSystemHandler creates a new system handler serving the swag doc
// registered under docsInstance
func NewSystemHandler(store Pinger, docsInstance string, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{store: store, docs: docsInstance, logger: logger}
}

type connectivityResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Health handles GET /health
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// StoreCheck handles GET /api/test
func (h *SystemHandler) StoreCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Error("store ping failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, connectivityResponse{Error: "Failed to connect to MongoDB"})
		return
	}
	writeJSON(w, http.StatusOK, connectivityResponse{Success: true, Message: "Connected to MongoDB!"})
}

// Docs handles GET /api/docs/swagger.json
func (h *SystemHandler) Docs(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc(h.docs)
	if err != nil {
		h.logger.Error("read api docs", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "docs unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
