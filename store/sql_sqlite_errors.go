package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// SQLiteClassifier implements [Classifier] for SQLite. Lock contention is the
// only transient failure mode a file-backed database has, so SQLITE_BUSY and
// SQLITE_LOCKED are retryable and everything else is not.
type SQLiteClassifier struct{}

// NewSQLiteClassifier constructs a [SQLiteClassifier] ready for use.
func NewSQLiteClassifier() *SQLiteClassifier {
	return &SQLiteClassifier{}
}

// Classify implements [Classifier].
func (c *SQLiteClassifier) Classify(err error) Classification {
	if err == nil {
		return NonRetryable
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return Retryable
		}
	}

	return NonRetryable
}
