package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/MKhiriev/go-service-kit/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// recordingSink is a test implementation of [AuditRecorder] that collects
// everything it receives. When block is set, Record waits until the channel
// is closed; started is closed on the first Record call.
type recordingSink struct {
	mu      sync.Mutex
	entries []AuditEntry
	err     error

	block     chan struct{}
	started   chan struct{}
	startOnce sync.Once
}

func (s *recordingSink) Record(ctx context.Context, entry AuditEntry) error {
	if s.started != nil {
		s.startOnce.Do(func() { close(s.started) })
	}
	if s.block != nil {
		<-s.block
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return s.err
}

func (s *recordingSink) recorded() []AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]AuditEntry(nil), s.entries...)
}

func TestAsyncAuditRecorder_DeliversInBackground(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &recordingSink{}
	rec := NewAsyncAuditRecorder(sink, 8, logger.Nop())

	require.NoError(t, rec.Record(context.Background(), AuditEntry{Entity: "order", EntityID: "1", Action: ActionCreate}))
	require.NoError(t, rec.Record(context.Background(), AuditEntry{Entity: "order", EntityID: "2", Action: ActionDelete}))

	require.NoError(t, rec.Close())

	entries := sink.recorded()
	require.Len(t, entries, 2)
	assert.Equal(t, "1", entries[0].EntityID)
	assert.Equal(t, "2", entries[1].EntityID)
	assert.NotEqual(t, uuid.Nil, entries[0].ID, "defaults should be stamped before enqueueing")
	assert.Zero(t, rec.Dropped())
}

func TestAsyncAuditRecorder_DropsWhenQueueFull(t *testing.T) {
	defer goleak.VerifyNone(t)

	block := make(chan struct{})
	sink := &recordingSink{block: block, started: make(chan struct{})}
	rec := NewAsyncAuditRecorder(sink, 1, logger.Nop())

	ctx := context.Background()

	// первый элемент занимает воркера, второй заполняет очередь,
	// третьему места уже нет
	require.NoError(t, rec.Record(ctx, AuditEntry{EntityID: "1"}))
	<-sink.started
	require.NoError(t, rec.Record(ctx, AuditEntry{EntityID: "2"}))
	require.NoError(t, rec.Record(ctx, AuditEntry{EntityID: "3"}))

	assert.Equal(t, int64(1), rec.Dropped())

	close(block)
	require.NoError(t, rec.Close())

	entries := sink.recorded()
	require.Len(t, entries, 2)
	assert.Equal(t, "1", entries[0].EntityID)
	assert.Equal(t, "2", entries[1].EntityID)
}

func TestAsyncAuditRecorder_RecordAfterCloseDrops(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &recordingSink{}
	rec := NewAsyncAuditRecorder(sink, 8, logger.Nop())
	require.NoError(t, rec.Close())

	err := rec.Record(context.Background(), AuditEntry{EntityID: "late"})

	require.NoError(t, err, "recording must stay best-effort after close")
	assert.Equal(t, int64(1), rec.Dropped())
	assert.Empty(t, sink.recorded())
}

func TestAsyncAuditRecorder_CloseIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := NewAsyncAuditRecorder(&recordingSink{}, 8, logger.Nop())

	require.NoError(t, rec.Close())
	require.NoError(t, rec.Close())
}

func TestAsyncAuditRecorder_SinkErrorsDoNotPropagate(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &recordingSink{err: errors.New("db down")}
	rec := NewAsyncAuditRecorder(sink, 8, logger.Nop())

	err := rec.Record(context.Background(), AuditEntry{EntityID: "1"})

	require.NoError(t, err)
	require.NoError(t, rec.Close())
	assert.Len(t, sink.recorded(), 1)
}
