package middleware

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-service-kit/logger"
	"github.com/MKhiriev/go-service-kit/trace"
)

// TraceID returns a middleware that ensures every request carries a
// correlation identifier. An inbound X-Trace-ID header is reused so that the
// caller's identifier survives the hop; otherwise a fresh UUID is generated.
//
// The identifier is stored in the request context, bound to a child of log
// as the trace_id field (so every line logged downstream carries it), and
// echoed on the response header.
func TraceID(log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var traceID string
			if traceIDFromRequestHeader := r.Header.Get(trace.Header); traceIDFromRequestHeader != "" {
				traceID = traceIDFromRequestHeader
			} else {
				traceID = trace.NewID()
			}

			l := log.GetChildLogger()
			l.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("trace_id", traceID)
			})
			ctx = trace.WithID(ctx, traceID)
			r = r.WithContext(l.WithContext(ctx))

			w.Header().Set(trace.Header, traceID)
			next.ServeHTTP(w, r)
		})
	}
}
