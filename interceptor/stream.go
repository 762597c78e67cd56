package interceptor

import (
	"context"

	"google.golang.org/grpc"
)

// serverStream carries an enriched context through a streaming call.
// grpc.ServerStream exposes its context via a method, so interceptors that
// add values to it have to hand the handler a wrapped stream.
type serverStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *serverStream) Context() context.Context {
	return s.ctx
}
