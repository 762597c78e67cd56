package store

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-service-kit/trace"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuditEntry_WithDefaults_FillsBlankFields(t *testing.T) {
	ctx := trace.WithID(context.Background(), "trace-123")

	entry := AuditEntry{Actor: "user-42", Action: ActionCreate}.withDefaults(ctx)

	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.Equal(t, time.UTC, entry.CreatedAt.Location())
	assert.Equal(t, "trace-123", entry.TraceID)
}

func TestAuditEntry_WithDefaults_KeepsExplicitFields(t *testing.T) {
	id := uuid.New()
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := trace.WithID(context.Background(), "trace-123")

	entry := AuditEntry{ID: id, CreatedAt: createdAt, TraceID: "explicit"}.withDefaults(ctx)

	assert.Equal(t, id, entry.ID)
	assert.Equal(t, createdAt, entry.CreatedAt)
	assert.Equal(t, "explicit", entry.TraceID)
}

func TestAuditEntry_WithDefaults_NoTraceInContext(t *testing.T) {
	entry := AuditEntry{}.withDefaults(context.Background())

	assert.Empty(t, entry.TraceID)
}
