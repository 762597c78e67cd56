// Package httperr maps error chains to HTTP responses.
//
// Domain code returns plain errors wrapping either the kit sentinels
// (ErrNotFound, ErrConflict, ...) or service-specific sentinels added with
// [Register]. Transport handlers finish every failure path with a single
// [Respond] call, which resolves the status, logs the cause, and emits a
// uniform JSON [Envelope] carrying the correlation identifier of the
// request.
//
// For full control over status, machine-readable code, and message, wrap
// the cause in an [Error] via [New] or [Wrap].
package httperr
