package server

import (
	"context"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-service-kit/config"
	"github.com/MKhiriev/go-service-kit/logger"
	"google.golang.org/grpc"
)

type server struct {
	httpServer *httpServer
	grpcServer *grpcServer
	logger     *logger.Logger

	shutdownOnce sync.Once
	stopped      chan struct{}
}

// New creates a [Server] running the transports whose listen addresses are
// set in cfg: handler is served over HTTP on cfg.Server.Address, and
// grpcRegister (when non-nil) registers services on a gRPC server listening
// on cfg.GRPC.Address. Extra grpcOpts (interceptors, limits) are applied to
// the gRPC server.
//
// Returns [ErrNoServersConfigured] when neither address is set.
func New(cfg config.Base, log *logger.Logger, handler http.Handler, grpcRegister func(*grpc.Server), grpcOpts ...grpc.ServerOption) (Server, error) {
	log.Info().Msg("creating new server...")
	servers := &server{
		logger:  log,
		stopped: make(chan struct{}),
	}

	if cfg.Server.Address != "" {
		servers.httpServer = newHTTPServer(handler, cfg.Server, log)
	}
	if cfg.GRPC.Address != "" {
		servers.grpcServer = newGRPCServer(cfg.GRPC, log, grpcRegister, grpcOpts...)
	}

	if servers.httpServer == nil && servers.grpcServer == nil {
		return nil, ErrNoServersConfigured
	}

	return servers, nil
}

// RunServer launches all configured transports and blocks until either an
// OS stop signal arrives or [Server.Shutdown] is called.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		select {
		case <-ctx.Done():
			s.Shutdown()
		case <-s.stopped:
		}
	}()

	// launch all created servers
	if s.httpServer != nil {
		s.logger.Info().Msg("launching HTTP server")
		go s.httpServer.RunServer()
	}
	if s.grpcServer != nil {
		s.logger.Info().Msg("launching gRPC server")
		go s.grpcServer.RunServer()
	}

	<-s.stopped
	s.logger.Info().Msg("server shutdown gracefully")
}

// Shutdown gracefully stops every running transport. Safe to call more than
// once; RunServer returns once the stop completes.
func (s *server) Shutdown() {
	s.shutdownOnce.Do(func() {
		// finish HTTP server
		if s.httpServer != nil {
			s.httpServer.Shutdown()
		}

		// finish gRPC server
		if s.grpcServer != nil {
			s.grpcServer.Shutdown()
		}

		close(s.stopped)
	})
}
