// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package trace carries the request correlation identifier between the
// transport layers of a service. The identifier travels inbound via the
// [Header] HTTP header (or its lowercase gRPC metadata twin), lives in the
// request context while the request is handled, and is propagated to
// outbound calls and response headers so that one user action can be
// followed across service boundaries.
package trace

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header used to carry the correlation identifier.
const Header = "X-Trace-ID"

// MetadataKey is the gRPC metadata key used to carry the correlation
// identifier. Metadata keys are normalized to lowercase on the wire.
const MetadataKey = "x-trace-id"

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// IDCtxKey is the key used to store the correlation identifier in the
// context. Used together with GetIDFromContext for type-safe retrieval.
var IDCtxKey = contextKey("traceID")

// NewID generates a fresh correlation identifier.
func NewID() string {
	return uuid.NewString()
}

// WithID returns a copy of ctx carrying the given correlation identifier.
func WithID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, IDCtxKey, traceID)
}

// GetIDFromContext retrieves the correlation identifier from the context.
//
// Returns the identifier and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
func GetIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(IDCtxKey).(string)
	return traceID, ok
}
