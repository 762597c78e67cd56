package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf_KitSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "bad request", err: ErrBadRequest, expected: http.StatusBadRequest},
		{name: "unauthorized", err: ErrUnauthorized, expected: http.StatusUnauthorized},
		{name: "forbidden", err: ErrForbidden, expected: http.StatusForbidden},
		{name: "not found", err: ErrNotFound, expected: http.StatusNotFound},
		{name: "conflict", err: ErrConflict, expected: http.StatusConflict},
		{name: "unprocessable", err: ErrUnprocessable, expected: http.StatusUnprocessableEntity},
		{name: "too many requests", err: ErrTooManyRequests, expected: http.StatusTooManyRequests},
		{name: "internal", err: ErrInternal, expected: http.StatusInternalServerError},
		{name: "unavailable", err: ErrUnavailable, expected: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusOf(tt.err))
		})
	}
}

func TestStatusOf_WrappedSentinel(t *testing.T) {
	err := fmt.Errorf("get order id=42: %w", ErrNotFound)

	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

func TestStatusOf_DeeplyWrappedSentinel(t *testing.T) {
	err := fmt.Errorf("handler: %w", fmt.Errorf("service: %w", ErrConflict))

	assert.Equal(t, http.StatusConflict, StatusOf(err))
}

func TestStatusOf_ErrorTypeShortCircuits(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(http.StatusTeapot, "teapot", "short and stout"))

	assert.Equal(t, http.StatusTeapot, StatusOf(err))
}

func TestStatusOf_UnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("mystery")))
}

func TestStatusOf_NilError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(nil))
}

func TestRegister_CustomSentinel(t *testing.T) {
	errQuotaExceeded := errors.New("quota exceeded")
	Register(errQuotaExceeded, http.StatusPaymentRequired)

	assert.Equal(t, http.StatusPaymentRequired, StatusOf(errQuotaExceeded))
	assert.Equal(t, http.StatusPaymentRequired, StatusOf(fmt.Errorf("billing: %w", errQuotaExceeded)))
}

func TestRegister_LastStatusWins(t *testing.T) {
	errFlaky := errors.New("flaky dependency")
	Register(errFlaky, http.StatusBadGateway)
	Register(errFlaky, http.StatusServiceUnavailable)

	assert.Equal(t, http.StatusServiceUnavailable, StatusOf(errFlaky))
}
