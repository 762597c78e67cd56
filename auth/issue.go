package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issue creates a signed HMAC-SHA256 JWT token with the given parameters.
//
// The token includes the following standard claims:
//   - Issuer    (iss): taken from opts.Issuer
//   - Subject   (sub): the authenticated principal
//   - Audience  (aud): taken from opts.Audience when set
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus ttl
//
// plus the scope and role claims understood by [Claims]. Tokens produced
// here round-trip through [HS256Verifier]; the intended use is
// service-to-service credentials and test fixtures, not a full
// authorization server.
//
// Parameters:
//
//	opts    - verification options; Secret is the signing key, Issuer and
//	          Audience (both optional) are stamped into the claims
//	subject - principal the token is issued for
//	scope   - space-separated scope names, may be empty
//	roles   - granted roles, may be nil
//	ttl     - how long the token remains valid
//
// Returns:
//
//	string - the signed token
//	error  - non-nil if parameters are invalid or signing fails
//
// Example usage:
//
//	token, err := auth.Issue(auth.Options{Secret: "secret", Issuer: "my-service"},
//		"42", "orders:read", nil, time.Hour)
func Issue(opts Options, subject string, scope string, roles []string, ttl time.Duration) (string, error) {
	if opts.Secret == "" || subject == "" || ttl == 0 {
		return "", errors.New("invalid params for issuing JWT token")
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    opts.Issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Scope: scope,
		Roles: roles,
	}
	if opts.Audience != "" {
		claims.Audience = jwt.ClaimStrings{opts.Audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(opts.Secret))
	if err != nil {
		return "", fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return tokenString, nil
}
