// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildInsertAuditEntryQuery_SQLContainsParts(t *testing.T) {
	entry := AuditEntry{
		ID:        uuid.New(),
		Actor:     "user-42",
		Action:    ActionUpdate,
		Entity:    "order",
		EntityID:  "17",
		TraceID:   "trace-1",
		OldValue:  json.RawMessage(`{"status":"new"}`),
		NewValue:  json.RawMessage(`{"status":"paid"}`),
		IP:        "10.0.0.1",
		CreatedAt: time.Now().UTC(),
	}

	query, args, err := buildInsertAuditEntryQuery(entry)
	require.NoError(t, err)

	// args checks
	require.Len(t, args, 10)
	require.Equal(t, entry.ID, args[0])
	require.Equal(t, "user-42", args[1])
	require.Equal(t, ActionUpdate, args[2])
	require.Equal(t, `{"status":"new"}`, args[6])
	require.Equal(t, `{"status":"paid"}`, args[7])

	// query checks (contains parts)
	q := strings.ToLower(query)

	require.Contains(t, q, "insert into audit_log")
	require.Contains(t, q, "actor")
	require.Contains(t, q, "entity_id")
	require.Contains(t, q, "trace_id")
	require.Contains(t, q, "old_value")
	require.Contains(t, q, "new_value")
	require.Contains(t, q, "created_at")

	// placeholder format should be $1 (Postgres)
	require.Contains(t, query, "$1")
	require.Contains(t, query, "$10")
}

func Test_buildInsertAuditEntryQuery_NullsEmptySnapshots(t *testing.T) {
	entry := AuditEntry{
		ID:        uuid.New(),
		Actor:     "scheduler",
		Action:    ActionCreate,
		Entity:    "order",
		EntityID:  "17",
		CreatedAt: time.Now().UTC(),
	}

	_, args, err := buildInsertAuditEntryQuery(entry)
	require.NoError(t, err)

	require.Len(t, args, 10)
	assert.Nil(t, args[6], "old_value should bind as NULL")
	assert.Nil(t, args[7], "new_value should bind as NULL")
}

func Test_buildSelectAuditEntriesQuery_SQLContainsParts(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	filter := AuditFilter{
		Entity:   "order",
		EntityID: "17",
		Actor:    "user-42",
		From:     from,
		To:       to,
		Limit:    50,
		Offset:   100,
	}

	query, args, err := buildSelectAuditEntriesQuery(filter)
	require.NoError(t, err)

	// args follow the order the filters are applied in
	require.Len(t, args, 5)
	require.Equal(t, "order", args[0])
	require.Equal(t, "17", args[1])
	require.Equal(t, "user-42", args[2])
	require.Equal(t, from, args[3])
	require.Equal(t, to, args[4])

	// query checks (contains parts)
	q := strings.ToLower(query)

	require.Contains(t, q, "select")
	require.Contains(t, q, "from audit_log")
	require.Contains(t, q, "where")
	require.Contains(t, q, "entity")
	require.Contains(t, q, "created_at >= ")
	require.Contains(t, q, "created_at < ")
	require.Contains(t, q, "order by created_at desc, id desc")
	require.Contains(t, q, "limit 50")
	require.Contains(t, q, "offset 100")

	// placeholder format should be $1 (Postgres)
	require.Contains(t, query, "$1")
	require.Contains(t, query, "$5")
}

func Test_buildSelectAuditEntriesQuery_EmptyFilter(t *testing.T) {
	query, args, err := buildSelectAuditEntriesQuery(AuditFilter{})
	require.NoError(t, err)

	require.Empty(t, args)

	q := strings.ToLower(query)

	assert.NotContains(t, q, "where")
	assert.Contains(t, q, "limit 100", "default page size should be applied")
	assert.Contains(t, q, "order by created_at desc")
}

func Test_buildSelectAuditEntriesQuery_Idempotent(t *testing.T) {
	filter := AuditFilter{Entity: "order", Limit: 10}

	first, firstArgs, err := buildSelectAuditEntriesQuery(filter)
	require.NoError(t, err)

	second, secondArgs, err := buildSelectAuditEntriesQuery(filter)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstArgs, secondArgs)
}
