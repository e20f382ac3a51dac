package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hoangtv-dev/bemart-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Phone  *string
	Role   enums.UserRole
}

// AccessTokenClaims represents the typed JWT issued to clients. Contact
// fields travel in the token so checkout can overwrite guest-submitted
// values without another user lookup.
type AccessTokenClaims struct {
	UserID uuid.UUID      `json:"user_id"`
	Email  string         `json:"email"`
	Name   string         `json:"name"`
	Phone  *string        `json:"phone,omitempty"`
	Role   enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}
