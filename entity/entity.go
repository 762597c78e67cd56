package entity

import "time"

// Audit records who created and last changed a row and when.
// Embed it in service entities and call [Audit.Touch] before persisting.
type Audit struct {
	// CreatedAt is the timestamp when the row was first persisted.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"created_at"`

	// CreatedBy identifies the principal that created the row.
	CreatedBy string `json:"created_by"`

	// UpdatedAt is the timestamp of the last modification.
	UpdatedAt time.Time `json:"updated_at"`

	// UpdatedBy identifies the principal that last modified the row.
	UpdatedBy string `json:"updated_by"`
}

// Touch stamps the entity as updated by actor now (UTC). On the first
// call for a fresh entity the created fields are backfilled as well;
// after that they are never rewritten.
func (a *Audit) Touch(actor string) {
	now := time.Now().UTC()

	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
		a.CreatedBy = actor
	}

	a.UpdatedAt = now
	a.UpdatedBy = actor
}

// SoftDelete marks a row as logically removed without losing it.
// Reads filter on Deleted; the timestamp and actor keep the audit half.
type SoftDelete struct {
	// Deleted is the logical-removal flag reads filter on.
	Deleted bool `json:"deleted"`

	// DeletedAt is the timestamp of the first deletion, nil while the
	// row is live.
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	// DeletedBy identifies the principal that deleted the row.
	DeletedBy string `json:"deleted_by,omitempty"`
}

// MarkDeleted flags the entity as deleted by actor now (UTC). Calling it
// on an already deleted entity is a no-op: the first deletion stamp is
// kept.
func (s *SoftDelete) MarkDeleted(actor string) {
	if s.Deleted {
		return
	}

	now := time.Now().UTC()
	s.Deleted = true
	s.DeletedAt = &now
	s.DeletedBy = actor
}

// Restore clears the deletion mark and its stamps.
func (s *SoftDelete) Restore() {
	s.Deleted = false
	s.DeletedAt = nil
	s.DeletedBy = ""
}

// IsDeleted reports whether the entity is soft-deleted.
func (s *SoftDelete) IsDeleted() bool {
	return s.Deleted
}

// Versioned carries the optimistic-locking counter. Writers bump it on
// every update and pin the read value in the WHERE clause (see
// [VersionGuard]); a concurrent writer then shows up as zero rows
// affected.
type Versioned struct {
	// Version is incremented on every successful update.
	Version int64 `json:"version"`
}

// BumpVersion increments the version counter.
func (v *Versioned) BumpVersion() {
	v.Version++
}

// Base is the convenience aggregate most service entities embed: a
// numeric primary key plus the audit, soft-delete and versioning
// columns.
type Base struct {
	// ID is the internal unique identifier of the row.
	ID int64 `json:"id"`

	Audit
	SoftDelete
	Versioned
}
