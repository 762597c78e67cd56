package store

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-service-kit/httperr"
	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
)

// Sentinel errors returned by repositories and [SentinelFor] to signal
// well-known failure conditions. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrNotFound is returned when a query expected to match at least one
	// record produces an empty result set.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an INSERT or UPDATE violates a unique
	// constraint, meaning a record with the same natural key already exists.
	ErrDuplicate = errors.New("duplicate record")

	// ErrReferenceMissing is returned when an INSERT or UPDATE violates a
	// foreign key constraint, meaning the referenced record does not exist.
	ErrReferenceMissing = errors.New("referenced record does not exist")

	// ErrUnsupportedDriver is returned by [Open] when the configured driver
	// name is not one of the supported backends.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Low-level database operation errors. These are returned (or wrapped) when
// a SQL-level operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")
)

func init() {
	httperr.Register(ErrNotFound, http.StatusNotFound)
	httperr.Register(ErrDuplicate, http.StatusConflict)
	httperr.Register(ErrReferenceMissing, http.StatusUnprocessableEntity)
}

// SentinelFor translates a driver-level error into one of the package
// sentinels so that callers (and the httperr envelope) never see raw driver
// errors for common constraint failures.
//
// Mapping:
//   - sql.ErrNoRows and PostgreSQL no_data_found → [ErrNotFound]
//   - unique / primary key violations → [ErrDuplicate]
//   - foreign key violations → [ErrReferenceMissing]
//
// Constraint errors are wrapped so the driver detail stays available for
// logs; anything unrecognised is returned unchanged.
func SentinelFor(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%w: %v", ErrReferenceMissing, err)
	case pgerrcode.NoDataFound:
		return ErrNotFound
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %v", ErrReferenceMissing, err)
		}
	}

	return err
}
