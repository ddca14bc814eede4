package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID uuid.UUID
	Roles  []string
	jwt.RegisteredClaims
}

// TokenService validates access tokens issued by the identity service.
type TokenService interface {
	// GenerateAccessToken signs a short-lived access token.
	GenerateAccessToken(userID uuid.UUID, roles []string) (string, error)

	ValidateToken(tokenString string) (*Claims, error)
}
