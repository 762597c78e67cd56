// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-service-kit/logger"
)

// loggingConfig collects the options applied to [Logging].
type loggingConfig struct {
	skipPaths     map[string]struct{}
	logQuery      bool
	headerNames   []string
	maskedHeaders map[string]struct{}
	bodyMaxBytes  int64
	maskedFields  map[string]struct{}
}

// LoggingOption customizes the behaviour of [Logging].
type LoggingOption func(*loggingConfig)

// WithSkipPaths disables request logging for the given URL paths entirely.
// Intended for health and readiness probes that would otherwise flood the
// log.
func WithSkipPaths(paths ...string) LoggingOption {
	return func(cfg *loggingConfig) {
		for _, p := range paths {
			cfg.skipPaths[p] = struct{}{}
		}
	}
}

// WithQuery adds the query string to the logged URI. Values of sensitive
// parameters (the same masked-field set used for bodies) are replaced with
// a mask token.
func WithQuery() LoggingOption {
	return func(cfg *loggingConfig) {
		cfg.logQuery = true
	}
}

// WithHeaders logs the named request headers. Sensitive headers
// (Authorization, Cookie, Set-Cookie, X-Api-Key) are logged with their
// values masked, never in the clear.
func WithHeaders(names ...string) LoggingOption {
	return func(cfg *loggingConfig) {
		cfg.headerNames = append(cfg.headerNames, names...)
	}
}

// WithRequestBody logs JSON request bodies up to maxBytes, with the values
// of sensitive fields replaced by a mask token at any nesting depth. The
// built-in masked set (password, token, secret, ...) is always active;
// maskedFields adds service-specific names on top. Non-JSON and oversized
// bodies are logged as a size only.
func WithRequestBody(maxBytes int64, maskedFields ...string) LoggingOption {
	return func(cfg *loggingConfig) {
		cfg.bodyMaxBytes = maxBytes
		for _, name := range maskedFields {
			cfg.maskedFields[normalizeFieldName(name)] = struct{}{}
		}
	}
}

// Logging returns a middleware that writes one structured log line per
// completed request: method, URI, status, duration, and response size. The
// line is written at info level, raised to warn for 4xx and error for 5xx
// responses.
//
// The middleware never logs a sensitive value: query parameters, headers,
// and body fields from the masked sets are replaced with a mask token, and
// the request payload itself is left untouched for downstream handlers.
func Logging(opts ...LoggingOption) func(next http.Handler) http.Handler {
	cfg := &loggingConfig{
		skipPaths:     make(map[string]struct{}),
		maskedHeaders: fieldSet(defaultMaskedHeaders),
		maskedFields:  fieldSet(defaultMaskedFields),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, skip := cfg.skipPaths[r.URL.Path]; skip {
				next.ServeHTTP(w, r)
				return
			}

			log := logger.FromRequest(r)

			start := time.Now()

			uri := r.URL.Path
			if cfg.logQuery && r.URL.RawQuery != "" {
				uri += "?" + maskQuery(r.URL.Query(), cfg.maskedFields)
			}
			method := r.Method

			body, bodySize := readBodyForLog(r, cfg.bodyMaxBytes)

			lw := &responseWriter{
				ResponseWriter: w,
			}

			next.ServeHTTP(lw, r)

			duration := time.Since(start)

			status := lw.status
			if status == 0 {
				// handler wrote nothing; net/http sends 200 on return
				status = http.StatusOK
			}

			event := log.Info()
			switch {
			case status >= http.StatusInternalServerError:
				event = log.Error()
			case status >= http.StatusBadRequest:
				event = log.Warn()
			}

			event = event.
				Str("uri", uri).
				Str("method", method).
				Int("status", status).
				Dur("duration", duration).
				Int("size", lw.size)

			if len(cfg.headerNames) > 0 {
				event = event.Dict("headers", headerDict(r.Header, cfg.headerNames, cfg.maskedHeaders))
			}

			if bodySize >= 0 {
				var masked []byte
				ok := false
				if int64(bodySize) <= cfg.bodyMaxBytes {
					masked, ok = maskJSON(body, cfg.maskedFields)
				}
				if ok {
					event = event.RawJSON("body", masked)
				} else {
					event = event.Int("body_size", bodySize)
				}
			}

			event.Send()
		})
	}
}

// readBodyForLog drains and restores the request body so it can be logged.
// It returns the raw bytes and their size, or a size of -1 when body logging
// is disabled or the body is absent or unreadable.
func readBodyForLog(r *http.Request, maxBytes int64) ([]byte, int) {
	if maxBytes <= 0 || r.Body == nil || r.Body == http.NoBody {
		return nil, -1
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, -1
	}
	// restore request body
	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, len(body)
}

// maskQuery re-encodes the query string with sensitive parameter values
// replaced. Parameter order follows url.Values encoding (sorted by key).
func maskQuery(query url.Values, masked map[string]struct{}) string {
	for key, values := range query {
		if _, sensitive := masked[normalizeFieldName(key)]; !sensitive {
			continue
		}
		for i := range values {
			values[i] = maskToken
		}
		query[key] = values
	}
	return query.Encode()
}

// headerDict collects the requested headers into a log dictionary, masking
// the sensitive ones.
func headerDict(header http.Header, names []string, masked map[string]struct{}) *zerolog.Event {
	dict := zerolog.Dict()
	for _, name := range names {
		value := header.Get(name)
		if value == "" {
			continue
		}
		if _, sensitive := masked[normalizeFieldName(name)]; sensitive {
			value = maskToken
		}
		dict = dict.Str(name, value)
	}
	return dict
}
