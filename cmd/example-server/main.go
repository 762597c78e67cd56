// Command example-server is the reference wiring of the kit: layered
// config, structured logging, database bootstrap with migrations, an
// authenticated demo resource with an audit trail and CSV import, gRPC
// health with the interceptor chain, background workers and graceful
// shutdown. It exists as living documentation; nothing imports it.
package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-service-kit/auth"
	"github.com/MKhiriev/go-service-kit/config"
	"github.com/MKhiriev/go-service-kit/interceptor"
	"github.com/MKhiriev/go-service-kit/logger"
	"github.com/MKhiriev/go-service-kit/middleware"
	"github.com/MKhiriev/go-service-kit/server"
	"github.com/MKhiriev/go-service-kit/store"
	"github.com/MKhiriev/go-service-kit/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("example-server")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err := logger.SetGlobalLevel(cfg.Logging.Level); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().
		Str("http_address", cfg.Server.Address).
		Str("grpc_address", cfg.GRPC.Address).
		Str("db_driver", cfg.Database.Driver).
		Str("auth_mode", cfg.Auth.Mode).
		Msg("received configs")

	ctx, cancel := context.WithCancel(log.WithContext(context.Background()))
	defer cancel()

	db, err := store.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("error closing database")
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	auditLog := store.NewAuditRepository(db, log)
	recorder := store.NewAsyncAuditRecorder(auditLog, 0, log)
	defer func() { _ = recorder.Close() }()

	verifier, err := auth.NewVerifier(ctx, cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating token verifier")
	}

	notes := newNoteService(db, auditLog, recorder)
	if err := notes.ensureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("error preparing demo schema")
	}

	router := middleware.NewRouter(log,
		middleware.WithGZip(),
		middleware.WithLogging(middleware.WithRequestBody(4096, cfg.Logging.MaskedFields...)),
	)
	router.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	router.Route("/api/notes", notes.routes(verifier))

	group := workers.NewGroup(log, &workers.Periodic{
		Name:     "audit-drop-reporter",
		Interval: time.Minute,
		Fn:       reportDroppedAudits(recorder),
	})
	group.Start()
	defer group.Stop()

	if cfg.ConfigFile != "" {
		err := config.Watch(ctx, cfg.ConfigFile, func(updated *config.Base) {
			if err := logger.SetGlobalLevel(updated.Logging.Level); err != nil {
				log.Error().Err(err).Msg("error applying updated log level")
				return
			}
			log.Info().Str("level", updated.Logging.Level).Msg("log level updated")
		})
		if err != nil {
			log.Error().Err(err).Msg("error watching config file")
		}
	}

	srv, err := server.New(*cfg, log, router, registerGRPC, grpcOptions(log, verifier)...)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
	log.Info().Msg("example server stopped")
}

// grpcOptions builds the interceptor chain in the conventional order:
// trace ID first, then logging, then auth with the health checks exempt.
func grpcOptions(log *logger.Logger, v auth.Verifier) []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			interceptor.UnaryTraceID(log),
			interceptor.UnaryLogging(),
			interceptor.UnaryAuth(v, "/grpc.health.v1.Health/Check"),
		),
		grpc.ChainStreamInterceptor(
			interceptor.StreamTraceID(log),
			interceptor.StreamLogging(),
			interceptor.StreamAuth(v, "/grpc.health.v1.Health/Watch"),
		),
	}
}

func registerGRPC(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, health.NewServer())
}

// reportDroppedAudits periodically reports entries the async recorder had
// to drop since the previous tick.
func reportDroppedAudits(recorder *store.AsyncAuditRecorder) func(context.Context) error {
	var last int64
	return func(ctx context.Context) error {
		if n := recorder.Dropped(); n > last {
			logger.FromContext(ctx).Warn().Int64("dropped", n-last).Msg("audit entries dropped under load")
			last = n
		}
		return nil
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
