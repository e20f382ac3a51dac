package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hoangtv-dev/bemart-backend/api/responses"
	pkgAuth "github.com/hoangtv-dev/bemart-backend/pkg/auth"
	"github.com/hoangtv-dev/bemart-backend/pkg/config"
	pkgerrors "github.com/hoangtv-dev/bemart-backend/pkg/errors"
	"github.com/hoangtv-dev/bemart-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the claims.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(seedIdentity(r, claims, logg)))
		})
	}
}

// OptionalAuth seeds the identity when a valid bearer token is present and
// lets anonymous requests through untouched. A malformed token is still
// rejected so a client never silently degrades to guest mode.
func OptionalAuth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(seedIdentity(r, claims, logg)))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}

func seedIdentity(r *http.Request, claims *pkgAuth.AccessTokenClaims, logg *logger.Logger) context.Context {
	identity := Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
		Phone:  claims.Phone,
		Role:   claims.Role,
	}

	ctx := WithIdentity(r.Context(), identity)
	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"user_id":    identity.UserID.String(),
			"actor_role": string(identity.Role),
		})
	}
	return ctx
}
