// Package interceptor provides the gRPC counterparts of the HTTP
// middleware chain: correlation-ID propagation, per-call logging, and
// bearer-token authentication.
//
// Interceptors compose with grpc.ChainUnaryInterceptor and
// grpc.ChainStreamInterceptor in the conventional order: trace ID first,
// then logging, then auth, so that rejected calls are still logged with
// their correlation identifier.
package interceptor
