package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Authority prefixes used by [Claims.Authorities]. Scopes and roles are
// folded into one flat authority list under these prefixes, which keeps
// authorization decisions interoperable with services that reason in
// SCOPE_/ROLE_ terms.
const (
	ScopeAuthorityPrefix = "SCOPE_"
	RoleAuthorityPrefix  = "ROLE_"
)

// Claims is the verified content of a bearer token. It embeds the
// registered JWT claims and adds the authorization claims the kit acts on:
// the space-separated OAuth2 scope string, an optional role list, and the
// OAuth2 client identifier for service-to-service tokens.
type Claims struct {
	jwt.RegisteredClaims

	// Scope is the raw OAuth2 scope claim: scope names separated by
	// single spaces (e.g. "orders:read orders:write").
	Scope string `json:"scope,omitempty"`

	// Roles lists coarse-grained roles granted to the subject
	// (e.g. "admin", "support").
	Roles []string `json:"roles,omitempty"`

	// ClientID identifies the OAuth2 client the token was issued to.
	ClientID string `json:"client_id,omitempty"`
}

// UserID returns the token subject: the identifier of the authenticated
// principal.
func (c *Claims) UserID() string {
	return c.Subject
}

// ScopeList splits the raw scope claim into individual scope names.
func (c *Claims) ScopeList() []string {
	return strings.Fields(c.Scope)
}

// HasScope reports whether the token grants the given scope.
func (c *Claims) HasScope(scope string) bool {
	for _, s := range c.ScopeList() {
		if s == scope {
			return true
		}
	}
	return false
}

// HasRole reports whether the token grants the given role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Authorities flattens scopes and roles into a single prefixed list:
// every scope becomes SCOPE_<scope> and every role ROLE_<role>.
func (c *Claims) Authorities() []string {
	scopes := c.ScopeList()
	authorities := make([]string, 0, len(scopes)+len(c.Roles))
	for _, s := range scopes {
		authorities = append(authorities, ScopeAuthorityPrefix+s)
	}
	for _, r := range c.Roles {
		authorities = append(authorities, RoleAuthorityPrefix+r)
	}
	return authorities
}
