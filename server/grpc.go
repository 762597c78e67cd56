package server

import (
	"net"

	"github.com/MKhiriev/go-service-kit/config"
	"github.com/MKhiriev/go-service-kit/logger"

	"google.golang.org/grpc"
)

type grpcServer struct {
	address string
	server  *grpc.Server
	logger  *logger.Logger
}

func newGRPCServer(cfg config.GRPCServer, log *logger.Logger, register func(*grpc.Server), opts ...grpc.ServerOption) *grpcServer {
	srv := grpc.NewServer(opts...)
	if register != nil {
		register(srv)
	}

	return &grpcServer{
		address: cfg.Address,
		server:  srv,
		logger:  log,
	}
}

func (g *grpcServer) RunServer() {
	listener, err := net.Listen("tcp", g.address)
	if err != nil {
		g.logger.Err(err).Str("func", "*grpcServer.RunServer").Msg("gRPC server Listen")
		return
	}

	if err := g.server.Serve(listener); err != nil {
		g.logger.Err(err).Str("func", "*grpcServer.RunServer").Msg("gRPC server Serve")
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.server.GracefulStop()
}
