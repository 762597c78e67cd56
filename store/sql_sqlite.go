package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-service-kit/config"
	"github.com/MKhiriev/go-service-kit/logger"
)

// OpenSQLite opens a file-backed SQLite database, creating the file first if
// it does not exist yet. Pool limits from cfg are ignored: SQLite serialises
// writes anyway.
func OpenSQLite(ctx context.Context, cfg config.Database, log *logger.Logger) (*DB, error) {
	// db will be in file
	if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "OpenSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	conn, err := sql.Open(config.DriverSQLite, cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "OpenSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "OpenSQLite").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Debug().Str("func", "OpenSQLite").Msg("connected to database successfully")

	return &DB{
		DB:         conn,
		driver:     config.DriverSQLite,
		classifier: NewSQLiteClassifier(),
		logger:     log,
	}, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
