package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RegisterRequest creates a new principal with the outsider role.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest holds credentials for authenticating a principal.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and principal info.
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	ExpiresIn   int64         `json:"expires_in"`
	IssuedAt    time.Time     `json:"issued_at"`
	Principal   PrincipalInfo `json:"principal"`
}

// PrincipalInfo describes the authenticated principal in responses.
type PrincipalInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// JWTClaims represents the JWT payload for access tokens. Role decisions are
// not taken from the token: the authorization gate re-reads the principal's
// granted role so that grants take effect without re-login.
type JWTClaims struct {
	PrincipalID string `json:"principal_id"`
	Email       string `json:"email"`
	jwt.RegisteredClaims
}
