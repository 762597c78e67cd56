package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-service-kit/config"
	"github.com/MKhiriev/go-service-kit/logger"
	"github.com/MKhiriev/go-service-kit/migrations"
)

// DB wraps [sql.DB] together with the error classifier matching its driver
// and the logger used for connection-level events. Embedding keeps the full
// database/sql API available on the wrapper.
type DB struct {
	*sql.DB
	classifier Classifier
	driver     string
	logger     *logger.Logger
}

// Open connects to the database described by cfg, dispatching on the
// configured driver name. Returns [ErrUnsupportedDriver] for anything other
// than [config.DriverPostgres] and [config.DriverSQLite].
func Open(ctx context.Context, cfg config.Database, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Migrate applies all pending schema migrations for the connected backend.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// Driver reports the driver name this connection was opened with.
func (db *DB) Driver() string {
	return db.driver
}
