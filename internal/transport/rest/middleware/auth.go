package middleware

import (
	"context"
	"net/http"

	"medeval/internal/model"
	"medeval/internal/service"

	"go.uber.org/zap"
)

// AuthCookie is the cookie that carries the admin token
const AuthCookie = "auth_token"

type contextKey string

const AdminClaimsKey contextKey = "adminClaims"

// AuthMiddleware guards admin routes with the auth_token cookie
type AuthMiddleware struct {
	authSvc *service.AuthService
	logger  *zap.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc, logger: logger}
}

// RequireAdmin rejects requests without a valid admin token
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.authSvc.VerifyToken(TokenFromRequest(r))
		if err != nil {
			m.logger.Debug("admin request rejected", zap.String("path", r.URL.Path))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}

		ctx := context.WithValue(r.Context(), AdminClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromRequest returns the admin token cookie value, or ""
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(AuthCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// GetAdminClaims extracts the verified claims from context
func GetAdminClaims(ctx context.Context) *model.AdminClaims {
	if v, ok := ctx.Value(AdminClaimsKey).(*model.AdminClaims); ok {
		return v
	}
	return nil
}
