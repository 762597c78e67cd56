package auth

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-service-kit/httperr"
)

// ErrMissingToken is returned when a request carries no bearer token.
var ErrMissingToken = errors.New("missing bearer token")

// ErrInvalidToken is returned when a token is malformed, carries a bad
// signature, or fails verification for any reason not covered by a more
// specific sentinel.
var ErrInvalidToken = errors.New("invalid bearer token")

// ErrTokenExpired is returned when a token is past its expiry.
var ErrTokenExpired = errors.New("token expired")

// ErrWrongIssuer is returned when the token issuer does not match the
// configured one.
var ErrWrongIssuer = errors.New("unexpected token issuer")

// ErrWrongAudience is returned when the token audience does not include
// the configured one.
var ErrWrongAudience = errors.New("unexpected token audience")

// ErrInsufficientScope is returned when a valid token lacks a scope
// required by the endpoint.
var ErrInsufficientScope = errors.New("insufficient scope")

func init() {
	httperr.Register(ErrMissingToken, http.StatusUnauthorized)
	httperr.Register(ErrInvalidToken, http.StatusUnauthorized)
	httperr.Register(ErrTokenExpired, http.StatusUnauthorized)
	httperr.Register(ErrWrongIssuer, http.StatusUnauthorized)
	httperr.Register(ErrWrongAudience, http.StatusUnauthorized)
	httperr.Register(ErrInsufficientScope, http.StatusForbidden)
}
