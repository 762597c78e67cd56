// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package httperr

// Error is an HTTP-mappable error. It pairs an explicit status code with a
// stable machine-readable code and a client-safe message, optionally
// wrapping the underlying cause. The wrapped cause is available to
// errors.Is/errors.As and to logs, but is never serialized into a response
// body.
type Error struct {
	// Status is the HTTP status code the error maps to.
	Status int

	// Code is a stable machine-readable identifier for the error
	// (e.g. "order_limit_exceeded"). Clients branch on Code, not on
	// Message.
	Code string

	// Message is the human-readable, client-safe description emitted in
	// the response envelope.
	Message string

	err error
}

// New creates an Error with the given status, code, and client-safe message.
func New(status int, code, message string) *Error {
	return &Error{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Wrap creates an Error around an underlying cause. The cause participates
// in errors.Is/errors.As matching and appears in logs, while the response
// body only ever carries message.
func Wrap(err error, status int, code, message string) *Error {
	return &Error{
		Status:  status,
		Code:    code,
		Message: message,
		err:     err,
	}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Message + ": " + e.err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

// Envelope is the JSON body emitted for every error response.
type Envelope struct {
	// Error is the human-readable message.
	Error string `json:"error"`

	// Code is the machine-readable error identifier, when known.
	Code string `json:"code,omitempty"`

	// TraceID is the correlation identifier of the failed request, when
	// known. Clients quote it in support requests so the failure can be
	// found in the logs.
	TraceID string `json:"trace_id,omitempty"`
}
