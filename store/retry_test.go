package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClassifier answers every Classify call with a fixed result.
type fakeClassifier struct {
	result Classification
}

func (f *fakeClassifier) Classify(err error) Classification {
	return f.result
}

func TestWithRetry_SucceedsAfterTransientErrors(t *testing.T) {
	db := &DB{classifier: &fakeClassifier{result: Retryable}}

	attempts := 0
	err := WithRetry(context.Background(), db, func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithRetry_StopsOnNonRetryableError(t *testing.T) {
	db := &DB{classifier: &fakeClassifier{result: NonRetryable}}
	boom := errors.New("constraint violation")

	attempts := 0
	err := WithRetry(context.Background(), db, func(ctx context.Context) error {
		attempts++
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}

func TestWithRetry_GivesUpAfterMaxRetries(t *testing.T) {
	db := &DB{classifier: &fakeClassifier{result: Retryable}}
	transient := errors.New("still down")

	attempts := 0
	err := WithRetry(context.Background(), db, func(ctx context.Context) error {
		attempts++
		return transient
	})

	// исходная ошибка возвращается без обёртки retry
	require.ErrorIs(t, err, transient)
	assert.Equal(t, retryMaxRetries+1, attempts)
}

func TestWithRetry_RespectsContextCancellation(t *testing.T) {
	db := &DB{classifier: &fakeClassifier{result: Retryable}}
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := WithRetry(ctx, db, func(ctx context.Context) error {
		attempts++
		cancel() // отменяем между попытками
		return errors.New("transient")
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestWithRetry_NilClassifierNeverRetries(t *testing.T) {
	db := &DB{}

	attempts := 0
	err := WithRetry(context.Background(), db, func(ctx context.Context) error {
		attempts++
		return errors.New("boom")
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}
