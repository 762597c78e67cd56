// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev
package entity

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Canonical column names of the embeddable types. The scope helpers
// below are written against this schema.
const (
	ColID        = "id"
	ColCreatedAt = "created_at"
	ColCreatedBy = "created_by"
	ColUpdatedAt = "updated_at"
	ColUpdatedBy = "updated_by"
	ColDeleted   = "deleted"
	ColDeletedAt = "deleted_at"
	ColDeletedBy = "deleted_by"
	ColVersion   = "version"
)

// AuditColumns returns the column names persisted by [Audit].
func AuditColumns() []string {
	return []string{ColCreatedAt, ColCreatedBy, ColUpdatedAt, ColUpdatedBy}
}

// SoftDeleteColumns returns the column names persisted by [SoftDelete].
func SoftDeleteColumns() []string {
	return []string{ColDeleted, ColDeletedAt, ColDeletedBy}
}

// VersionedColumns returns the column names persisted by [Versioned].
func VersionedColumns() []string {
	return []string{ColVersion}
}

// BaseColumns returns the id column plus every column of the types
// embedded in [Base], in declaration order.
func BaseColumns() []string {
	cols := []string{ColID}
	cols = append(cols, AuditColumns()...)
	cols = append(cols, SoftDeleteColumns()...)
	cols = append(cols, VersionedColumns()...)
	return cols
}

// NotDeleted narrows a select to live rows. The default read scope:
// soft-deleted rows stay invisible unless asked for explicitly.
func NotDeleted(sel sq.SelectBuilder) sq.SelectBuilder {
	return sel.Where(sq.Eq{ColDeleted: false})
}

// OnlyDeleted narrows a select to soft-deleted rows, for trash views and
// restore flows.
func OnlyDeleted(sel sq.SelectBuilder) sq.SelectBuilder {
	return sel.Where(sq.Eq{ColDeleted: true})
}

// TouchSet appends the update-audit SET clauses. Timestamps are set on
// the Go side (UTC) so the same statement works on every supported
// driver.
func TouchSet(upd sq.UpdateBuilder, actor string) sq.UpdateBuilder {
	return upd.
		Set(ColUpdatedAt, time.Now().UTC()).
		Set(ColUpdatedBy, actor)
}

// SoftDeleteSet appends the soft-delete SET clauses.
func SoftDeleteSet(upd sq.UpdateBuilder, actor string) sq.UpdateBuilder {
	return upd.
		Set(ColDeleted, true).
		Set(ColDeletedAt, time.Now().UTC()).
		Set(ColDeletedBy, actor)
}

// RestoreSet clears the soft-delete columns.
func RestoreSet(upd sq.UpdateBuilder) sq.UpdateBuilder {
	return upd.
		Set(ColDeleted, false).
		Set(ColDeletedAt, nil).
		Set(ColDeletedBy, "")
}

// VersionGuard appends optimistic-lock clauses: SET bumps the version,
// WHERE pins the version the caller read. Zero rows affected after
// execution means a concurrent writer got there first.
func VersionGuard(upd sq.UpdateBuilder, current int64) sq.UpdateBuilder {
	return upd.
		Set(ColVersion, current+1).
		Where(sq.Eq{ColVersion: current})
}
