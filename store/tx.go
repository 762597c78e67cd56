package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-service-kit/logger"
)

// Tx runs fn inside a database transaction. The transaction commits when fn
// returns nil and rolls back otherwise; a panic inside fn rolls back before
// re-panicking.
//
// Begin and commit failures are wrapped in [ErrBeginningTransaction] and
// [ErrCommitingTransaction]; an error from fn is returned as-is so sentinel
// matching on it keeps working.
func Tx(ctx context.Context, db *DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.FromContext(ctx).Err(rbErr).Str("func", "Tx").Msg("error rolling back transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrCommitingTransaction, err)
	}

	return nil
}
