package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-service-kit/config"
	"github.com/MKhiriev/go-service-kit/logger"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

// OpenPostgres connects to PostgreSQL through the pgx stdlib driver, applies
// the pool limits from cfg and verifies the connection with a ping.
func OpenPostgres(ctx context.Context, cfg config.Database, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open(config.DriverPostgres, cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "OpenPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connection pool
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "OpenPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "OpenPostgres").Msg("connected to database successfully")

	return &DB{
		DB:         conn,
		driver:     config.DriverPostgres,
		classifier: NewPostgresClassifier(),
		logger:     log,
	}, nil
}

// postgresError extracts the PostgreSQL error code from err, or returns the
// empty string when err did not originate from the pgx driver.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
