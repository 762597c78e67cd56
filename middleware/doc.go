// Package middleware provides the HTTP cross-cutting layer shared by
// services built on the kit: correlation-ID propagation, request/response
// logging with sensitive-field masking, transparent gzip, and HMAC body
// integrity checking.
//
// Every middleware is a plain func(http.Handler) http.Handler, so each can
// be used with chi, the standard library mux, or any compatible router.
// [NewRouter] returns a chi router with the standard stack pre-wired in the
// conventional order: panic recovery, then correlation ID, then logging,
// then the optional extras.
package middleware
