package httpx

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/trustgate/pkg/rolex"
	"github.com/aussiebroadwan/trustgate/pkg/slogx"
)

// Authenticator turns a raw bearer credential into a Principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Principal, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, token string) (Principal, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, token string) (Principal, error) {
	return f(ctx, token)
}

// AuthnMiddleware rejects requests without a valid credential. Every
// failure gets the same response; the cause is only logged.
func AuthnMiddleware(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw, ok := TokenFromRequest(r)
			if !ok {
				writeBearerError(w)
				return
			}

			p, err := a.Authenticate(ctx, raw)
			if err != nil {
				slogx.FromContext(ctx).Warn("credential rejected", slogx.Err(err))
				writeBearerError(w)
				return
			}

			ctx = WithPrincipal(ctx, p)
			ctx = slogx.With(ctx, "sub", p.SubjectID, "role", p.Role.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RoleChecker is satisfied by *rolex.Hierarchy.
type RoleChecker interface {
	Authorize(subject rolex.Role, required []rolex.Role, mode rolex.Mode) error
}

// RequireRole must run after AuthnMiddleware.
func RequireRole(c RoleChecker, mode rolex.Mode, roles ...rolex.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				writeBearerError(w)
				return
			}

			if err := c.Authorize(p.Role, roles, mode); err != nil {
				slogx.FromContext(r.Context()).Warn("role check failed", slogx.Err(err))
				WriteError(w, http.StatusForbidden, "insufficient_role", "insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="invalid or expired token"`)
	WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid or expired token")
}
