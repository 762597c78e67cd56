package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../internal/mock/store_mock.go -package=mock

// Classifier decides whether a failed database operation is worth retrying.
// Implementations inspect driver-specific error values; [WithRetry] consults
// the classifier between attempts.
type Classifier interface {
	Classify(err error) Classification
}

// AuditRecorder persists audit trail entries. The canonical implementation
// is [AuditRepository]; [AsyncAuditRecorder] decorates any recorder with a
// buffered background queue so that audit writes never block or fail the
// business operation.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) error
}
