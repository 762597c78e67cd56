// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-service-kit/config"
	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// wellKnownJWKSPath is appended to the issuer URL when no explicit JWKS
// endpoint is configured.
const wellKnownJWKSPath = "/.well-known/jwks.json"

const (
	defaultJWKSHTTPTimeout   = 10 * time.Second
	defaultJWKSRefreshPeriod = time.Hour
)

//go:generate mockgen -source=verifier.go -destination=../internal/mock/verifier_mock.go -package=mock

// Verifier checks a raw bearer token and returns its claims.
type Verifier interface {
	Verify(ctx context.Context, raw string) (*Claims, error)
}

// Options configures token verification.
type Options struct {
	// Secret is the shared HS256 signing key. Required for the HS256
	// verifier, ignored by the JWKS one.
	Secret string

	// Issuer is the expected `iss` claim. Required for the JWKS verifier
	// when JWKSURL is empty, optional otherwise. When set, tokens from any
	// other issuer are rejected.
	Issuer string

	// Audience is the expected `aud` claim. When set, tokens not naming it
	// are rejected.
	Audience string

	// JWKSURL is the JWKS endpoint of the authorization server. When empty
	// the JWKS verifier derives it from Issuer.
	JWKSURL string

	// Leeway compensates clock skew between this service and the token
	// issuer when checking time-based claims.
	Leeway time.Duration

	// HTTPTimeout bounds outbound JWKS fetches.
	HTTPTimeout time.Duration
}

// NewVerifier creates a verifier from the shared auth configuration
// section, dispatching on the configured mode.
func NewVerifier(ctx context.Context, cfg config.Auth) (Verifier, error) {
	opts := Options{
		Secret:      cfg.Secret,
		Issuer:      cfg.Issuer,
		Audience:    cfg.Audience,
		JWKSURL:     cfg.JWKSURL,
		Leeway:      cfg.Leeway,
		HTTPTimeout: cfg.HTTPTimeout,
	}

	switch cfg.Mode {
	case config.AuthModeHS256:
		return NewHS256Verifier(opts)
	case config.AuthModeJWKS:
		return NewJWKSVerifier(ctx, opts)
	default:
		return nil, fmt.Errorf("unknown auth mode: %q", cfg.Mode)
	}
}

// HS256Verifier validates tokens signed with a shared symmetric key.
type HS256Verifier struct {
	secret     []byte
	parserOpts []jwt.ParserOption
}

// NewHS256Verifier creates a verifier for HS256-signed tokens.
// Suitable for internal services that share a signing secret; tokens
// signed with any other algorithm are rejected.
func NewHS256Verifier(opts Options) (*HS256Verifier, error) {
	if opts.Secret == "" {
		return nil, errors.New("HS256 verifier requires a signing secret")
	}

	return &HS256Verifier{
		secret:     []byte(opts.Secret),
		parserOpts: parserOptions(opts, jwt.SigningMethodHS256.Alg()),
	}, nil
}

// Verify parses and validates the given token.
func (v *HS256Verifier) Verify(_ context.Context, raw string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, v.parserOpts...)
	if err != nil {
		return nil, classifyTokenError(err)
	}

	return claims, nil
}

// JWKSVerifier validates tokens against keys published by the
// authorization server. The key set is fetched over HTTP and refreshed in
// the background until the constructor context is cancelled.
type JWKSVerifier struct {
	keys       keyfunc.Keyfunc
	parserOpts []jwt.ParserOption
}

// NewJWKSVerifier creates a verifier backed by a remote JWKS endpoint.
// The endpoint is opts.JWKSURL, or the issuer's well-known JWKS location
// when only opts.Issuer is set. The initial key fetch happens here, so an
// unreachable authorization server fails fast at startup.
func NewJWKSVerifier(ctx context.Context, opts Options) (*JWKSVerifier, error) {
	jwksURL := opts.JWKSURL
	if jwksURL == "" {
		if opts.Issuer == "" {
			return nil, errors.New("JWKS verifier requires a JWKS URL or an issuer")
		}
		jwksURL = strings.TrimSuffix(opts.Issuer, "/") + wellKnownJWKSPath
	}

	httpTimeout := opts.HTTPTimeout
	if httpTimeout <= 0 {
		httpTimeout = defaultJWKSHTTPTimeout
	}

	storage, err := jwkset.NewStorageFromHTTP(jwksURL, jwkset.HTTPClientStorageOptions{
		Ctx:             ctx,
		Client:          &http.Client{Timeout: httpTimeout},
		RefreshInterval: defaultJWKSRefreshPeriod,
		RefreshErrorHandler: func(ctx context.Context, err error) {
			zerolog.Ctx(ctx).Error().Err(err).Str("jwks_url", jwksURL).Msg("error refreshing JWKS")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error fetching JWKS from %s: %w", jwksURL, err)
	}

	keys, err := keyfunc.New(keyfunc.Options{Ctx: ctx, Storage: storage})
	if err != nil {
		return nil, fmt.Errorf("error creating JWKS keyfunc: %w", err)
	}

	return &JWKSVerifier{
		keys: keys,
		parserOpts: parserOptions(opts,
			jwt.SigningMethodRS256.Alg(), jwt.SigningMethodRS384.Alg(), jwt.SigningMethodRS512.Alg(),
			jwt.SigningMethodES256.Alg(), jwt.SigningMethodES384.Alg(), jwt.SigningMethodES512.Alg(),
			jwt.SigningMethodPS256.Alg(), jwt.SigningMethodPS384.Alg(), jwt.SigningMethodPS512.Alg(),
		),
	}, nil
}

// Verify parses and validates the given token against the cached key set.
func (v *JWKSVerifier) Verify(_ context.Context, raw string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(raw, claims, v.keys.Keyfunc, v.parserOpts...)
	if err != nil {
		return nil, classifyTokenError(err)
	}

	return claims, nil
}

// parserOptions assembles validation options shared by both verifiers.
// The accepted algorithm list is always pinned: a token whose header names
// any other algorithm is rejected before signature checks.
func parserOptions(opts Options, algs ...string) []jwt.ParserOption {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods(algs),
		jwt.WithExpirationRequired(),
	}

	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}
	if opts.Leeway > 0 {
		parserOpts = append(parserOpts, jwt.WithLeeway(opts.Leeway))
	}

	return parserOpts
}

// classifyTokenError folds golang-jwt parse errors into the package
// sentinels so callers and the HTTP error mapper see stable causes.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return fmt.Errorf("%w: %v", ErrWrongIssuer, err)
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return fmt.Errorf("%w: %v", ErrWrongAudience, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
}
