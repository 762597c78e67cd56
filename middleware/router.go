package middleware

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-service-kit/logger"
)

// routerConfig collects the options applied to [NewRouter].
type routerConfig struct {
	loggingOpts       []LoggingOption
	gzip              bool
	integrityKey      string
	integrityRequired bool
}

// RouterOption customizes the middleware stack built by [NewRouter].
type RouterOption func(*routerConfig)

// WithLogging forwards options to the [Logging] middleware in the stack.
func WithLogging(opts ...LoggingOption) RouterOption {
	return func(cfg *routerConfig) {
		cfg.loggingOpts = append(cfg.loggingOpts, opts...)
	}
}

// WithGZip adds transparent request/response compression to the stack.
func WithGZip() RouterOption {
	return func(cfg *routerConfig) {
		cfg.gzip = true
	}
}

// WithIntegrity adds HMAC body verification with the given shared key.
// When required is true, requests without a signature are rejected.
func WithIntegrity(key string, required bool) RouterOption {
	return func(cfg *routerConfig) {
		cfg.integrityKey = key
		cfg.integrityRequired = required
	}
}

// NewRouter returns a chi router with the kit's standard middleware stack
// pre-wired in the conventional order: panic recovery first, then
// correlation IDs, then request logging, then the optional compression and
// integrity layers. Authentication is mounted per route group by the
// service itself, after the stack.
func NewRouter(log *logger.Logger, opts ...RouterOption) *chi.Mux {
	cfg := &routerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(TraceID(log))
	router.Use(Logging(cfg.loggingOpts...))
	if cfg.gzip {
		router.Use(GZip)
	}
	if cfg.integrityKey != "" {
		router.Use(Integrity(cfg.integrityKey, cfg.integrityRequired))
	}

	return router
}
