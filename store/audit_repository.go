package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-service-kit/logger"
)

// AuditRepository persists and lists audit trail entries in the audit_log
// table. It implements [AuditRecorder].
//
// The audit trail is append-only: there are no update or delete methods, and
// the table carries no soft-delete columns.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type AuditRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewAuditRepository constructs an [AuditRepository] backed by the provided
// database connection and logger.
func NewAuditRepository(db *DB, logger *logger.Logger) *AuditRepository {
	logger.Debug().Msg("creating audit repository")
	return &AuditRepository{
		db:     db,
		logger: logger,
	}
}

// Record implements [AuditRecorder]. It stamps the entry's ID, timestamp and
// trace ID when unset and inserts the row, retrying transient driver
// failures via [WithRetry].
//
// Error handling:
//   - unique violation → [ErrDuplicate]
//   - foreign key violation → [ErrReferenceMissing]
//   - any other driver-level error → returned via [SentinelFor] unchanged
func (r *AuditRepository) Record(ctx context.Context, entry AuditEntry) error {
	log := logger.FromContext(ctx)

	entry = entry.withDefaults(ctx)

	query, args, err := buildInsertAuditEntryQuery(entry)
	if err != nil {
		log.Err(err).Str("func", "*AuditRepository.Record").Msg("error building insert query")
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	err = WithRetry(ctx, r.db, func(ctx context.Context) error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*AuditRepository.Record").Msg("error inserting audit entry")
		return SentinelFor(err)
	}

	return nil
}

// List returns the audit entries matching filter, newest first.
func (r *AuditRepository) List(ctx context.Context, filter AuditFilter) ([]AuditEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAuditEntriesQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*AuditRepository.List").Msg("error building select query")
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*AuditRepository.List").Msg("error executing select query")
		return nil, SentinelFor(err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var (
			entry    AuditEntry
			oldValue []byte
			newValue []byte
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.Actor,
			&entry.Action,
			&entry.Entity,
			&entry.EntityID,
			&entry.TraceID,
			&oldValue,
			&newValue,
			&entry.IP,
			&entry.CreatedAt,
		); err != nil {
			log.Err(err).Str("func", "*AuditRepository.List").Msg("error scanning audit entry row")
			return nil, err
		}
		entry.OldValue = oldValue
		entry.NewValue = newValue
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*AuditRepository.List").Msg("error occurred during rows iteration")
		return nil, err
	}

	return entries, nil
}
