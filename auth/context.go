// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import "context"

type contextKey string

func (c contextKey) String() string {
	return "auth context key " + string(c)
}

// ClaimsCtxKey is the context key under which verified token claims are
// stored by [Middleware].
var ClaimsCtxKey = contextKey("Claims")

// GetClaimsFromContext extracts verified token claims from the context.
//
// Parameters:
//   - ctx: context to extract claims from.
//
// Returns:
//   - *Claims: claims stored by the auth middleware.
//   - bool: true if claims were present.
func GetClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(*Claims)
	return claims, ok
}

// GetSubjectFromContext extracts the authenticated subject from the
// context. It is shorthand for GetClaimsFromContext(ctx) followed by
// [Claims.UserID].
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return "", false
	}
	return claims.Subject, true
}

// ContextWithClaims returns a copy of ctx carrying the given claims.
// Useful in tests and in non-HTTP entry points that authenticate by other
// means.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsCtxKey, claims)
}
