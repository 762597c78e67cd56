// Package auth verifies OAuth2 bearer tokens and guards HTTP endpoints.
//
// Two verifier implementations cover the common deployments: HS256 with a
// shared signing secret for internal services, and JWKS-backed asymmetric
// keys for tokens minted by an external authorization server. [Middleware]
// wires a verifier into an HTTP middleware chain; [RequireScopes] and
// [RequireRoles] add per-route authorization on top. The accepted signing
// algorithms are always pinned by the verifier, never taken from the
// token header.
package auth
