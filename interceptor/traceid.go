package interceptor

import (
	"context"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/MKhiriev/go-service-kit/logger"
	"github.com/MKhiriev/go-service-kit/trace"
)

// UnaryTraceID returns an interceptor that ensures every unary call carries
// a correlation identifier. An inbound x-trace-id metadata value is reused
// so that the caller's identifier survives the hop; otherwise a fresh UUID
// is generated.
//
// The identifier is stored in the call context, bound to a child of log as
// the trace_id field, and echoed in the response header metadata.
func UnaryTraceID(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx, traceID := contextWithTraceID(ctx, log)

		// header write fails only when the transport is already gone
		_ = grpc.SetHeader(ctx, metadata.Pairs(trace.MetadataKey, traceID))

		return handler(ctx, req)
	}
}

// StreamTraceID is [UnaryTraceID] for streaming calls.
func StreamTraceID(log *logger.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx, traceID := contextWithTraceID(ss.Context(), log)

		_ = ss.SetHeader(metadata.Pairs(trace.MetadataKey, traceID))

		return handler(srv, &serverStream{ServerStream: ss, ctx: ctx})
	}
}

// contextWithTraceID resolves the trace ID from the incoming metadata, or
// mints a new one, and binds it to the context and the context logger.
func contextWithTraceID(ctx context.Context, log *logger.Logger) (context.Context, string) {
	var traceID string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(trace.MetadataKey); len(values) > 0 && values[0] != "" {
			traceID = values[0]
		}
	}
	if traceID == "" {
		traceID = trace.NewID()
	}

	l := log.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID)
	})
	ctx = trace.WithID(ctx, traceID)

	return l.WithContext(ctx), traceID
}
