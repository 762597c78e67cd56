// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package interceptor

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-service-kit/logger"
)

// UnaryLogging returns an interceptor that writes one structured log line
// per completed unary call: full method, status code and duration. Lines
// log at info level; calls that fail with a client-side code are raised to
// warn and server-side codes to error.
//
// The line is written through the context logger, so when [UnaryTraceID]
// runs first it carries the call's trace_id field.
func UnaryLogging() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		logCall(ctx, info.FullMethod, err, time.Since(start))

		return resp, err
	}
}

// StreamLogging is [UnaryLogging] for streaming calls. The duration covers
// the whole stream, not individual messages.
func StreamLogging() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()

		err := handler(srv, ss)

		logCall(ss.Context(), info.FullMethod, err, time.Since(start))

		return err
	}
}

func logCall(ctx context.Context, method string, err error, duration time.Duration) {
	code := status.Code(err)

	log := logger.FromContext(ctx)
	event := callEvent(log, code)

	event = event.
		Str("method", method).
		Str("code", code.String()).
		Dur("duration", duration)
	if err != nil {
		event = event.Err(err)
	}

	event.Send()
}

// callEvent picks the log level for a completed call by its status code,
// mirroring the 4xx/5xx escalation of the HTTP logging middleware.
func callEvent(log *logger.Logger, code codes.Code) *zerolog.Event {
	switch code {
	case codes.OK:
		return log.Info()
	case codes.Unknown, codes.DeadlineExceeded, codes.Unimplemented,
		codes.Internal, codes.Unavailable, codes.DataLoss:
		return log.Error()
	default:
		return log.Warn()
	}
}
