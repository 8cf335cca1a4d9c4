package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/taskboard/internal/adapters/http/dto"
	"github.com/jsamuelsen11/taskboard/internal/domain"
	"github.com/jsamuelsen11/taskboard/internal/platform/auth"
)

const bearerPrefix = "Bearer "

// Identity is the authenticated caller extracted from a validated access
// token. Handlers retrieve it via IdentityFromContext.
type Identity struct {
	UserID   int64
	Username string
}

// identityKey is the context key for the authenticated identity.
type identityKey struct{}

// WithIdentity returns a new context carrying the authenticated identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext extracts the authenticated identity from the context.
// The second return is false when the request was not authenticated.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// Auth returns middleware that guards routes with a bearer access token.
// Requests without a well-formed Authorization header, or whose token fails
// validation (signature, expiry, or refresh-where-access-required), receive
// an RFC 9457 401 response. On success the identity from the token claims is
// stored in the request context.
func Auth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, r, "missing authorization header")
				return
			}

			if !strings.HasPrefix(header, bearerPrefix) {
				unauthorized(w, r, "authorization header must use the Bearer scheme")
				return
			}

			token := strings.TrimPrefix(header, bearerPrefix)
			if token == "" {
				unauthorized(w, r, "missing bearer token")
				return
			}

			claims, err := tokens.ValidateAccessToken(token)
			if err != nil {
				unauthorized(w, r, "invalid or expired token")
				return
			}

			ctx := WithIdentity(r.Context(), Identity{
				UserID:   claims.UserID,
				Username: claims.Username,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// unauthorized writes an RFC 9457 401 response with a WWW-Authenticate
// challenge. The reason is intentionally generic; token validation details
// are never echoed back.
func unauthorized(w http.ResponseWriter, r *http.Request, reason string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	dto.WriteErrorResponse(w, r, fmt.Errorf("%s: %w", reason, domain.ErrUnauthorized))
}
