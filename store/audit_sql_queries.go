// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
)

const auditTable = "audit_log"

// defaultAuditPageSize is applied when a filter does not set Limit.
const defaultAuditPageSize = 100

var auditColumns = []string{
	"id",
	"actor",
	"action",
	"entity",
	"entity_id",
	"trace_id",
	"old_value",
	"new_value",
	"ip",
	"created_at",
}

// buildInsertAuditEntryQuery builds the INSERT statement for one audit
// entry. Dollar placeholders work on both PostgreSQL and SQLite.
func buildInsertAuditEntryQuery(entry AuditEntry) (string, []any, error) {
	return sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Insert(auditTable).
		Columns(auditColumns...).
		Values(
			entry.ID,
			entry.Actor,
			entry.Action,
			entry.Entity,
			entry.EntityID,
			entry.TraceID,
			jsonArg(entry.OldValue),
			jsonArg(entry.NewValue),
			entry.IP,
			entry.CreatedAt,
		).
		ToSql()
}

// jsonArg binds a JSON snapshot as TEXT, or NULL when there is none. Binding
// as string keeps the statement portable: pgx would send a plain []byte as
// bytea, which a TEXT column rejects.
func jsonArg(value json.RawMessage) any {
	if len(value) == 0 {
		return nil
	}

	return string(value)
}

// buildSelectAuditEntriesQuery builds the listing SELECT for the given
// filter, newest entries first.
func buildSelectAuditEntriesQuery(filter AuditFilter) (string, []any, error) {
	query := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Select(auditColumns...).
		From(auditTable)

	if filter.Entity != "" {
		query = query.Where(sq.Eq{"entity": filter.Entity})
	}
	if filter.EntityID != "" {
		query = query.Where(sq.Eq{"entity_id": filter.EntityID})
	}
	if filter.Actor != "" {
		query = query.Where(sq.Eq{"actor": filter.Actor})
	}
	if !filter.From.IsZero() {
		query = query.Where(sq.GtOrEq{"created_at": filter.From})
	}
	if !filter.To.IsZero() {
		query = query.Where(sq.Lt{"created_at": filter.To})
	}

	limit := filter.Limit
	if limit == 0 {
		limit = defaultAuditPageSize
	}

	return query.
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		Offset(filter.Offset).
		ToSql()
}
