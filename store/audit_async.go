package store

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-service-kit/logger"
)

// defaultAuditQueueSize is the queue capacity used when the caller passes a
// non-positive size.
const defaultAuditQueueSize = 256

// AsyncAuditRecorder decorates an [AuditRecorder] with a buffered queue
// drained by a single background worker. Enqueueing never blocks: when the
// queue is full the entry is dropped and counted, because auditing is
// best-effort and must never slow down or fail the business operation.
type AsyncAuditRecorder struct {
	sink   AuditRecorder
	queue  chan AuditEntry
	done   chan struct{}
	logger *logger.Logger

	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
	dropped   atomic.Int64
}

// NewAsyncAuditRecorder starts the background worker and returns the
// recorder. Call [AsyncAuditRecorder.Close] on shutdown to flush the queue.
func NewAsyncAuditRecorder(sink AuditRecorder, queueSize int, log *logger.Logger) *AsyncAuditRecorder {
	if queueSize <= 0 {
		queueSize = defaultAuditQueueSize
	}

	r := &AsyncAuditRecorder{
		sink:   sink,
		queue:  make(chan AuditEntry, queueSize),
		done:   make(chan struct{}),
		logger: log,
	}
	go r.run()

	return r
}

// Record implements [AuditRecorder]. The entry's defaults (ID, timestamp,
// trace ID) are stamped from ctx before enqueueing, while the request
// context is still alive. Always returns nil: a full queue or a closed
// recorder drops the entry with a warning instead of failing the caller.
func (r *AsyncAuditRecorder) Record(ctx context.Context, entry AuditEntry) error {
	entry = entry.withDefaults(ctx)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.drop(entry, "audit recorder is closed, entry dropped")
		return nil
	}

	select {
	case r.queue <- entry:
	default:
		r.drop(entry, "audit queue is full, entry dropped")
	}

	return nil
}

// Dropped reports how many entries have been discarded since construction.
func (r *AsyncAuditRecorder) Dropped() int64 {
	return r.dropped.Load()
}

// Close stops accepting new entries, waits until the worker has drained the
// queue and returns. Safe to call more than once.
func (r *AsyncAuditRecorder) Close() error {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		close(r.queue)
		r.mu.Unlock()
	})
	<-r.done

	return nil
}

func (r *AsyncAuditRecorder) run() {
	defer close(r.done)

	// Request contexts are already cancelled by the time entries drain, so
	// the sink runs against a background context carrying the recorder's
	// logger.
	ctx := r.logger.WithContext(context.Background())

	for entry := range r.queue {
		if err := r.sink.Record(ctx, entry); err != nil {
			r.logger.Err(err).
				Str("func", "*AsyncAuditRecorder.run").
				Str("entity", entry.Entity).
				Str("entity_id", entry.EntityID).
				Msg("error recording audit entry")
		}
	}
}

func (r *AsyncAuditRecorder) drop(entry AuditEntry, reason string) {
	r.dropped.Add(1)
	r.logger.Warn().
		Str("func", "*AsyncAuditRecorder.Record").
		Str("entity", entry.Entity).
		Str("entity_id", entry.EntityID).
		Msg(reason)
}
