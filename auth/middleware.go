package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-service-kit/httperr"
	"github.com/MKhiriev/go-service-kit/logger"
	"github.com/rs/zerolog"
)

// Middleware authenticates every request with the given verifier.
//
// The bearer token is taken from the Authorization header. On success the
// verified claims are stored in the request context and the request logger
// gains a `sub` field, so all downstream log lines identify the principal.
// On failure the request is rejected through the shared error mapper with
// an RFC 6750 challenge in WWW-Authenticate.
func Middleware(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := BearerToken(r)
			if err != nil {
				if !errors.Is(err, ErrMissingToken) {
					w.Header().Set("WWW-Authenticate", `Bearer error="invalid_request"`)
				}
				httperr.Respond(w, r, err)
				return
			}

			claims, err := v.Verify(r.Context(), raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				httperr.Respond(w, r, err)
				return
			}

			log := logger.FromRequest(r).GetChildLogger()
			log.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("sub", claims.Subject)
			})

			ctx := ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(log.WithContext(ctx)))
		})
	}
}

// RequireScopes rejects requests whose token does not grant every listed
// scope. It must run after [Middleware]; a request with no claims in
// context is treated as unauthenticated.
func RequireScopes(scopes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaimsFromContext(r.Context())
			if !ok {
				httperr.Respond(w, r, ErrMissingToken)
				return
			}

			for _, scope := range scopes {
				if !claims.HasScope(scope) {
					w.Header().Set("WWW-Authenticate",
						fmt.Sprintf(`Bearer error="insufficient_scope", scope=%q`, strings.Join(scopes, " ")))
					httperr.Respond(w, r, fmt.Errorf("%w: missing scope %q", ErrInsufficientScope, scope))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoles rejects requests whose token does not grant every listed
// role. It must run after [Middleware]; a request with no claims in
// context is treated as unauthenticated.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaimsFromContext(r.Context())
			if !ok {
				httperr.Respond(w, r, ErrMissingToken)
				return
			}

			for _, role := range roles {
				if !claims.HasRole(role) {
					httperr.Respond(w, r, fmt.Errorf("%w: missing role %q", httperr.ErrForbidden, role))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the bearer token from the Authorization header.
// The scheme comparison is case-insensitive.
//
// Parameters:
//   - r: request to read the Authorization header from.
//
// Returns:
//   - string: the raw token.
//   - error: ErrMissingToken if no credential is present, ErrInvalidToken
//     if the header is not a bearer credential.
func BearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", ErrMissingToken
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("%w: authorization header is not a bearer credential", ErrInvalidToken)
	}
	if parts[1] == "" {
		return "", ErrMissingToken
	}

	return parts[1], nil
}
