package httperr

import (
	"errors"
	"net/http"
)

var errorStatusMap = map[error]int{
	ErrBadRequest:      http.StatusBadRequest,
	ErrUnauthorized:    http.StatusUnauthorized,
	ErrForbidden:       http.StatusForbidden,
	ErrNotFound:        http.StatusNotFound,
	ErrConflict:        http.StatusConflict,
	ErrUnprocessable:   http.StatusUnprocessableEntity,
	ErrTooManyRequests: http.StatusTooManyRequests,
	ErrInternal:        http.StatusInternalServerError,
	ErrUnavailable:     http.StatusServiceUnavailable,
}

// Register maps a sentinel error to an HTTP status so that [StatusOf] and
// [Respond] recognize it anywhere in a wrapped chain. Registering the same
// sentinel again replaces the previous status.
//
// The registry is not synchronized: call Register from init or main before
// the server starts accepting requests.
func Register(err error, status int) {
	errorStatusMap[err] = status
}

// StatusOf resolves err to an HTTP status code.
//
// A *[Error] anywhere in the chain short-circuits to its Status. Otherwise
// the registry is consulted with errors.Is, so wrapped sentinels are found.
// Unknown errors and nil map to 500.
func StatusOf(err error) int {
	status, _ := resolve(err)
	return status
}

// resolve returns the status for err together with the matched sentinel,
// which carries the client-safe default message. The sentinel is nil when
// err is unknown or carries its own *[Error].
func resolve(err error) (int, error) {
	if err == nil {
		return http.StatusInternalServerError, nil
	}

	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr.Status, nil
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status, target
		}
	}

	return http.StatusInternalServerError, nil
}
