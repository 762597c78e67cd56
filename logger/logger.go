// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger shared by all
// services built on go-service-kit. It adds convenience constructors and
// context-aware helpers so that request-scoped loggers (enriched with trace
// IDs, subjects, etc. by the kit middleware) can be obtained anywhere.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Application code should pass *Logger by pointer and obtain request-scoped
// loggers via FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// kit to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a production-ready *Logger for the given role label
// (e.g. "orders-api", "worker").
//
// The logger is configured with:
//   - a "role" field set to role, useful for filtering logs from different
//     services sharing one log pipeline;
//   - a timestamp field added to every log entry;
//   - a "func" caller field that records the fully-qualified function name
//     (instead of the default file:line format) for easier log navigation.
//
// Output is written to os.Stdout in JSON format.
func NewLogger(role string) *Logger {
	return NewWithWriter(role, os.Stdout)
}

// NewWithWriter is NewLogger with an explicit output writer. Services use it
// to log to files, test code uses it to capture output in a buffer.
func NewWithWriter(role string, w io.Writer) *Logger {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name() // return function name
	}
	zerolog.CallerFieldName = "func"

	l := zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{l}
}

// SetGlobalLevel parses level ("debug", "info", "warn", "error", ...) and
// applies it process-wide. An empty level keeps the current one. Returns the
// zerolog parse error for unknown level names.
func SetGlobalLevel(level string) error {
	if level == "" {
		return nil
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(parsed)
	return nil
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithContext attaches the logger to ctx so that later FromContext calls in
// the same request or job return it.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromRequest extracts the zerolog.Logger stored in the request's context by
// zerolog's log.Ctx helper and returns it as a *Logger.
//
// This is typically used in HTTP handlers running below the kit middleware,
// which attaches a request-scoped logger to the context.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its global logger,
// so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
