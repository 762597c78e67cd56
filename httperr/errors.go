package httperr

import "errors"

// Kit-level sentinel errors. Domain packages wrap these (or register their
// own sentinels via [Register]) so that transport handlers can turn any
// error chain into the right HTTP status with a single [Respond] call.
var (
	// ErrBadRequest indicates a malformed or semantically invalid request.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized indicates a missing or unverifiable identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates a verified identity without sufficient rights.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates that the requested resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a state conflict, such as a duplicate key or a
	// lost optimistic-locking race.
	ErrConflict = errors.New("conflict")
	// ErrUnprocessable indicates a well-formed request whose content fails
	// domain validation.
	ErrUnprocessable = errors.New("unprocessable entity")
	// ErrTooManyRequests indicates that the caller exceeded a rate limit.
	ErrTooManyRequests = errors.New("too many requests")
	// ErrInternal indicates an unexpected server-side failure.
	ErrInternal = errors.New("internal server error")
	// ErrUnavailable indicates a temporarily unavailable dependency.
	ErrUnavailable = errors.New("service unavailable")
)
