package model

import "github.com/golang-jwt/jwt/v5"

// AdminRole is the only role the credential gate ever issues
const AdminRole = "admin"

// AdminClaims are JWT claims for the administrator session
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for admin login
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse is returned by admin login
type LoginResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// AuthStatus reports whether the caller holds a valid admin credential
type AuthStatus struct {
	Authenticated bool `json:"authenticated"`
}
