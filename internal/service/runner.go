package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/benx421/points-exchange/internal/db"
)

// RunnerConfig tunes transaction locking and retries
type RunnerConfig struct {
	LockTimeout time.Duration
	Backoff     time.Duration
	MaxAttempts int
}

// Runner executes a unit of work inside a database transaction. Each attempt
// sets a lock timeout, and deadlocks, lock timeouts, serialization failures
// and voucher code conflicts are replayed from scratch.
type Runner struct {
	db     *db.DB
	logger *slog.Logger
	cfg    RunnerConfig
}

// NewRunner creates a new Runner
func NewRunner(database *db.DB, cfg RunnerConfig, logger *slog.Logger) *Runner {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Runner{
		db:     database,
		logger: logger,
		cfg:    cfg,
	}
}

// Run calls fn inside a transaction and commits when it returns nil. The
// returned error is always a *ServiceError.
func (r *Runner) Run(ctx context.Context, operation string, fn func(tx *sql.Tx) error) error {
	var lastErr error

	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			txRetriesTotal.WithLabelValues(operation).Inc()
			r.logger.WarnContext(ctx, "retrying transaction",
				"operation", operation,
				"attempt", attempt,
				"error", lastErr,
			)
			if err := sleepContext(ctx, backoff(r.cfg.Backoff, attempt-1)); err != nil {
				return &ServiceError{
					Code:    ErrCodeTransientFailure,
					Message: "request cancelled while waiting to retry",
					Err:     err,
				}
			}
		}

		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return asServiceError(err)
		}
		lastErr = err
	}

	return exhausted(lastErr)
}

func (r *Runner) runOnce(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, db.TxOptions)
	if err != nil {
		return internalError("failed to start transaction", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	if r.cfg.LockTimeout > 0 {
		// SET does not take bind parameters
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.cfg.LockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return internalError("failed to set lock timeout", err)
		}
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		if db.IsRetryable(err) {
			return err
		}
		return internalError("failed to commit transaction", err)
	}

	return nil
}

// isRetryable reports whether the whole transaction may be replayed
func isRetryable(err error) bool {
	if db.IsRetryable(err) {
		return true
	}
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Code == ErrCodeConflict
}

func exhausted(err error) *ServiceError {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Code == ErrCodeConflict {
		return svcErr
	}
	return &ServiceError{
		Code:    ErrCodeTransientFailure,
		Message: "the request could not be completed due to contention, please retry",
		Err:     err,
	}
}

func asServiceError(err error) *ServiceError {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return internalError("transaction failed", err)
}

// backoff grows linearly with the retry number and adds up to one base step
// of jitter
func backoff(base time.Duration, retry int) time.Duration {
	if base <= 0 {
		return 0
	}
	return base*time.Duration(retry) + rand.N(base)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
