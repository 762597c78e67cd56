package interceptor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-service-kit/auth"
	"github.com/MKhiriev/go-service-kit/logger"
)

// authorizationKey is the incoming metadata key carrying the bearer
// credential. gRPC metadata keys are lowercase on the wire.
const authorizationKey = "authorization"

// UnaryAuth returns an interceptor that authenticates every unary call with
// the given verifier, except calls to the exempted full methods (e.g.
// "/grpc.health.v1.Health/Check").
//
// The bearer token is taken from the authorization metadata. On success the
// verified claims are stored in the call context under the same key the
// HTTP middleware uses, and the context logger gains a `sub` field. On
// failure the call is rejected with codes.Unauthenticated; the status
// message carries the matched sentinel's text, never the wrapped cause.
func UnaryAuth(v auth.Verifier, exempt ...string) grpc.UnaryServerInterceptor {
	skip := methodSet(exempt)

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := skip[info.FullMethod]; ok {
			return handler(ctx, req)
		}

		ctx, err := authenticate(ctx, v)
		if err != nil {
			return nil, err
		}

		return handler(ctx, req)
	}
}

// StreamAuth is [UnaryAuth] for streaming calls.
func StreamAuth(v auth.Verifier, exempt ...string) grpc.StreamServerInterceptor {
	skip := methodSet(exempt)

	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if _, ok := skip[info.FullMethod]; ok {
			return handler(srv, ss)
		}

		ctx, err := authenticate(ss.Context(), v)
		if err != nil {
			return err
		}

		return handler(srv, &serverStream{ServerStream: ss, ctx: ctx})
	}
}

// UnaryRequireScopes rejects unary calls whose token does not grant every
// listed scope with codes.PermissionDenied. It must run after [UnaryAuth];
// a call with no claims in context is treated as unauthenticated.
func UnaryRequireScopes(scopes ...string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		claims, ok := auth.GetClaimsFromContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, auth.ErrMissingToken.Error())
		}

		for _, scope := range scopes {
			if !claims.HasScope(scope) {
				return nil, status.Errorf(codes.PermissionDenied, "%s: missing scope %q", auth.ErrInsufficientScope, scope)
			}
		}

		return handler(ctx, req)
	}
}

// authenticate verifies the call's bearer credential and returns a context
// enriched with the claims and a `sub` logger field.
func authenticate(ctx context.Context, v auth.Verifier) (context.Context, error) {
	raw, err := bearerFromMetadata(ctx)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, authFailureMessage(err))
	}

	claims, err := v.Verify(ctx, raw)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, authFailureMessage(err))
	}

	log := logger.FromContext(ctx).GetChildLogger()
	log.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("sub", claims.Subject)
	})

	return log.WithContext(auth.ContextWithClaims(ctx, claims)), nil
}

// bearerFromMetadata extracts the bearer token from the authorization
// metadata. The scheme comparison is case-insensitive, matching
// [auth.BearerToken].
func bearerFromMetadata(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", auth.ErrMissingToken
	}

	values := md.Get(authorizationKey)
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return "", auth.ErrMissingToken
	}

	parts := strings.Split(strings.TrimSpace(values[0]), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("%w: authorization metadata is not a bearer credential", auth.ErrInvalidToken)
	}
	if parts[1] == "" {
		return "", auth.ErrMissingToken
	}

	return parts[1], nil
}

// authFailureMessage reduces a verification error to the matched sentinel's
// text. The wrapped cause stays in the logs.
func authFailureMessage(err error) string {
	for _, sentinel := range []error{
		auth.ErrMissingToken,
		auth.ErrTokenExpired,
		auth.ErrWrongIssuer,
		auth.ErrWrongAudience,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	return auth.ErrInvalidToken.Error()
}

func methodSet(methods []string) map[string]struct{} {
	set := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		set[m] = struct{}{}
	}

	return set
}
