package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/hoangtv-dev/bemart-backend/pkg/enums"
)

type contextKey string

const ctxIdentity contextKey = "identity"

// Identity is the authenticated caller derived from access token claims.
// Contact fields ride along so checkout can trust them over request input.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Phone  *string
	Role   enums.UserRole
}

// WithIdentity injects the authenticated identity into the context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, identity)
}

// IdentityFromContext returns the identity seeded by Auth, or nil for
// anonymous requests.
func IdentityFromContext(ctx context.Context) *Identity {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxIdentity).(Identity); ok {
		return &v
	}
	return nil
}

func UserIDFromContext(ctx context.Context) uuid.UUID {
	if identity := IdentityFromContext(ctx); identity != nil {
		return identity.UserID
	}
	return uuid.Nil
}

func RoleFromContext(ctx context.Context) enums.UserRole {
	if identity := IdentityFromContext(ctx); identity != nil {
		return identity.Role
	}
	return ""
}
