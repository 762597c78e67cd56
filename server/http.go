package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-service-kit/config"
	"github.com/MKhiriev/go-service-kit/logger"
)

// defaultShutdownTimeout bounds how long a graceful HTTP shutdown may take
// before remaining connections are abandoned.
const defaultShutdownTimeout = 10 * time.Second

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, cfg config.HTTPServer, log *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:         cfg.Address,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: log,
	}
}

func (h *httpServer) RunServer() {
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Err(err).Str("func", "*httpServer.RunServer").Msg("HTTP server ListenAndServe")
	}
}

func (h *httpServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		// ошибки закрытия Listener
		h.logger.Err(err).Str("func", "*httpServer.Shutdown").Msg("HTTP server Shutdown")
	}
}
