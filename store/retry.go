// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-service-kit/logger"
	"github.com/sethvargo/go-retry"
)

// Retry policy for transient database failures. Fibonacci backoff gives
// 50ms, 50ms, 100ms between the up to four attempts.
const (
	retryBaseDelay  = 50 * time.Millisecond
	retryCapDelay   = 2 * time.Second
	retryMaxRetries = 3
)

// WithRetry runs op, retrying it with fibonacci backoff when the database
// classifier reports the failure as transient (connection loss, deadlock,
// lock contention). Non-retryable errors and nil are returned immediately.
//
// Cancelling ctx stops the backoff between attempts; the context error is
// returned in that case.
func WithRetry(ctx context.Context, db *DB, op func(ctx context.Context) error) error {
	backoff := retry.WithCappedDuration(retryCapDelay, retry.NewFibonacci(retryBaseDelay))
	backoff = retry.WithMaxRetries(retryMaxRetries, backoff)

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := op(ctx)
		if err == nil {
			return nil
		}

		if db.classifier != nil && db.classifier.Classify(err) == Retryable {
			logger.FromContext(ctx).Warn().Err(err).Str("func", "WithRetry").Msg("transient database error, retrying")
			return retry.RetryableError(err)
		}

		return err
	})
}
