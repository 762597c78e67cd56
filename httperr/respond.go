package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-service-kit/logger"
	"github.com/MKhiriev/go-service-kit/trace"
)

// Respond is the single point where errors become HTTP responses. It
// resolves err to a status code, logs it through the request logger (error
// level for 5xx, warn for 4xx), and writes the JSON [Envelope] with the
// request's correlation identifier attached.
//
// Client-safe messages only: a *[Error] contributes its Message, a matched
// sentinel contributes its own text, and everything else (including every
// 5xx) is reduced to the generic status text. The wrapped cause goes to the
// logs, never to the body.
//
// A 401 response gains a "WWW-Authenticate: Bearer" header unless the
// handler already set a more specific challenge.
func Respond(w http.ResponseWriter, r *http.Request, err error) {
	status, target := resolve(err)

	env := Envelope{Error: http.StatusText(status)}

	var httpErr *Error
	switch {
	case errors.As(err, &httpErr):
		env.Error = httpErr.Message
		env.Code = httpErr.Code
	case target != nil && status < http.StatusInternalServerError:
		env.Error = target.Error()
	}

	if traceID, ok := trace.GetIDFromContext(r.Context()); ok {
		env.TraceID = traceID
	}

	if status == http.StatusUnauthorized && w.Header().Get("WWW-Authenticate") == "" {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	log := logger.FromRequest(r)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	if env.Code != "" {
		event = event.Str("code", env.Code)
	}
	event.Err(err).Int("status", status).Msg("request failed")

	if _, writeErr := WriteJSON(w, env, status); writeErr != nil {
		log.Error().Err(writeErr).Msg("error writing error response")
	}
}

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Parameters:
//
//	w          - the HTTP response writer to write the response to
//	data       - any value to be serialized as JSON (struct, map, slice, nil, etc.)
//	statusCode - HTTP status code to set in the response (e.g. http.StatusOK)
//
// Returns:
//
//	int   - number of bytes written to the response body
//	error - non-nil if JSON marshaling fails
//
// Example usage:
//
//	WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
//	WriteJSON(w, map[string]string{"error": "not found"}, http.StatusNotFound)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}
