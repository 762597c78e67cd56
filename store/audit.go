package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/go-service-kit/trace"
	"github.com/google/uuid"
)

// Well-known audit actions. Action is a free-form string; these cover the
// usual lifecycle of a record.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// AuditEntry is one row of the append-only audit trail. It captures who did
// what to which record, the request it happened in, and the record state
// before and after the change.
type AuditEntry struct {
	// ID is the entry's primary key, generated client-side so the same
	// statement works on every backend.
	ID uuid.UUID `json:"id"`

	// Actor identifies who performed the action (user ID, client ID or a
	// system name for background jobs).
	Actor string `json:"actor"`

	// Action names what happened, usually one of [ActionCreate],
	// [ActionUpdate] or [ActionDelete].
	Action string `json:"action"`

	// Entity is the kind of record affected (e.g. "order") and EntityID its
	// identifier in that table.
	Entity   string `json:"entity"`
	EntityID string `json:"entity_id"`

	// TraceID links the entry to the request that caused it.
	TraceID string `json:"trace_id,omitempty"`

	// OldValue and NewValue hold JSON snapshots of the record before and
	// after the change. Either may be nil (no old value on create, no new
	// value on delete).
	OldValue json.RawMessage `json:"old_value,omitempty"`
	NewValue json.RawMessage `json:"new_value,omitempty"`

	// IP is the remote address the request came from, when known.
	IP string `json:"ip,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// withDefaults fills the fields a caller normally leaves blank: a fresh ID,
// the creation timestamp and the trace ID from ctx. Explicitly set fields
// are kept.
func (e AuditEntry) withDefaults(ctx context.Context) AuditEntry {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.TraceID == "" {
		if traceID, ok := trace.GetIDFromContext(ctx); ok {
			e.TraceID = traceID
		}
	}

	return e
}

// AuditFilter narrows an audit trail listing. Zero-valued fields are not
// applied.
type AuditFilter struct {
	// Entity and EntityID select the history of one kind of record, or of
	// one record when both are set.
	Entity   string
	EntityID string

	// Actor selects entries recorded for one actor.
	Actor string

	// From and To bound CreatedAt: From is inclusive, To exclusive.
	From time.Time
	To   time.Time

	// Limit caps the page size (default 100), Offset skips preceding
	// entries. Entries are always returned newest first.
	Limit  uint64
	Offset uint64
}
