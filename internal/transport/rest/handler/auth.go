package handler

import (
	"net/http"
	"time"

	"medeval/internal/model"
	"medeval/internal/service"
	"medeval/internal/transport/rest/middleware"

	"go.uber.org/zap"
)

// AuthHandler handles admin login and status endpoints
type AuthHandler struct {
	authSvc      *service.AuthService
	secureCookie bool
	logger       *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService, secureCookie bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, secureCookie: secureCookie, logger: logger}
}

// Login handles POST /api/admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.LoginResponse{Error: "invalid request body"})
		return
	}

	token, expiresAt, err := h.authSvc.IssueToken(req.Password)
	if err != nil {
		status := statusFor(service.CodeOf(err))
		message := "Login failed"
		if se, ok := service.AsServiceError(err); ok {
			message = se.Message
		}
		if status == http.StatusInternalServerError {
			h.logger.Error("admin login failed", zap.Error(err))
		} else {
			h.logger.Info("admin login rejected", zap.String("remote_addr", r.RemoteAddr))
		}
		writeJSON(w, status, model.LoginResponse{Error: message})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.authSvc.TokenTTL() / time.Second),
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, model.LoginResponse{Success: true})
}

// Status handles GET /api/auth/status
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromRequest(r)
	writeJSON(w, http.StatusOK, model.AuthStatus{
		Authenticated: h.authSvc.IsAuthenticated(token),
	})
}
