package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "deadlock", err: &pq.Error{Code: "40P01"}, want: true},
		{name: "lock timeout via pgx", err: &pgconn.PgError{Code: "55P03"}, want: true},
		{name: "serialization failure wrapped in service error", err: internalError("failed to lock account", fmt.Errorf("query: %w", &pq.Error{Code: "40001"})), want: true},
		{name: "voucher code conflict", err: &ServiceError{Code: ErrCodeConflict}, want: true},
		{name: "business failure", err: &ServiceError{Code: ErrCodeInsufficientBalance}, want: false},
		{name: "check violation", err: &pq.Error{Code: "23514"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestExhausted(t *testing.T) {
	t.Run("conflict stays a conflict", func(t *testing.T) {
		conflict := &ServiceError{Code: ErrCodeConflict, Message: "voucher code collision"}

		assert.Equal(t, ErrCodeConflict, exhausted(conflict).Code)
	})

	t.Run("storage contention becomes transient failure", func(t *testing.T) {
		cause := &pq.Error{Code: "40P01"}
		err := exhausted(cause)

		assert.Equal(t, ErrCodeTransientFailure, err.Code)
		assert.ErrorIs(t, err, cause)
	})
}

func TestAsServiceError(t *testing.T) {
	typed := &ServiceError{Code: ErrCodeWalletLocked}
	assert.Same(t, typed, asServiceError(fmt.Errorf("wrapped: %w", typed)))
	assert.Equal(t, ErrCodeInternalError, asServiceError(errors.New("boom")).Code)
}

func TestBackoff(t *testing.T) {
	base := 50 * time.Millisecond

	for retry := 1; retry <= 3; retry++ {
		d := backoff(base, retry)
		assert.GreaterOrEqual(t, d, base*time.Duration(retry), "backoff grows linearly")
		assert.Less(t, d, base*time.Duration(retry+1), "jitter stays below one step")
	}

	assert.Zero(t, backoff(0, 2), "zero base disables waiting")
}

func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sleepContext(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)

	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))
}

func TestNewRunner_MinimumOneAttempt(t *testing.T) {
	r := NewRunner(nil, RunnerConfig{MaxAttempts: 0}, nil)
	assert.Equal(t, 1, r.cfg.MaxAttempts)
}
