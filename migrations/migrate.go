// Package migrations ships the schema migrations embedded into the binary
// and applies them with goose.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Migrate applies all pending migrations to db. The dialect is the
// database/sql driver name the connection was opened with ("pgx" or
// "sqlite3"); the shipped migrations are written to run on both.
func Migrate(db *sql.DB, dialect string) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
