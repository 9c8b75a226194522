package service

import (
	"crypto/subtle"
	"time"

	"medeval/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials error = &ServiceError{Code: ErrorUnauthorized, Message: "Incorrect password"}
	ErrInvalidToken       error = &ServiceError{Code: ErrorUnauthorized, Message: "invalid or expired token"}
)

// DefaultTokenTTL is how long an admin token stays valid
const DefaultTokenTTL = 7 * 24 * time.Hour

// AuthConfig holds the admin secrets. Empty values are allowed and
// surface as configuration errors at login.
type AuthConfig struct {
	AdminPassword       string
	AdminPasswordBcrypt string
	JWTSecret           string
	TokenTTL            time.Duration
}

// AuthService issues and verifies the administrator token
type AuthService struct {
	cfg AuthConfig
	now func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthConfig) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		cfg: cfg,
		now: time.Now,
	}
}

// TokenTTL returns the lifetime of issued tokens
func (s *AuthService) TokenTTL() time.Duration { return s.cfg.TokenTTL }

// IssueToken checks password against the configured admin secret and
// returns a signed token with its expiry.
func (s *AuthService) IssueToken(password string) (string, time.Time, error) {
	if s.cfg.AdminPassword == "" && s.cfg.AdminPasswordBcrypt == "" {
		return "", time.Time{}, NewConfigurationError("Server config error: ADMIN_PASSWORD missing")
	}
	if s.cfg.JWTSecret == "" {
		return "", time.Time{}, NewConfigurationError("Server config error: JWT_SECRET missing")
	}
	if !s.passwordMatches(password) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.cfg.TokenTTL)
	claims := &model.AdminClaims{
		Role: model.AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func (s *AuthService) passwordMatches(password string) bool {
	if s.cfg.AdminPasswordBcrypt != "" {
		err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordBcrypt), []byte(password))
		return err == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
}

// VerifyToken validates an admin JWT and returns its claims
func (s *AuthService) VerifyToken(tokenString string) (*model.AdminClaims, error) {
	if tokenString == "" || s.cfg.JWTSecret == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &model.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.AdminClaims)
	if !ok || !token.Valid || claims.Role != model.AdminRole {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IsAuthenticated reports whether tokenString is a valid admin token
func (s *AuthService) IsAuthenticated(tokenString string) bool {
	_, err := s.VerifyToken(tokenString)
	return err == nil
}
