package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/benx421/points-exchange/internal/db"
	"github.com/benx421/points-exchange/internal/models"
	"github.com/google/uuid"
)

// IdempotencyRepository stores replayable responses for idempotent requests
type IdempotencyRepository interface {
	Get(ctx context.Context, key string, actorID uuid.UUID, requestPath string) (*models.IdempotencyKey, error)
	Reserve(ctx context.Context, key string, actorID uuid.UUID, requestPath string) (bool, error)
	Complete(ctx context.Context, idemKey *models.IdempotencyKey) error
	Release(ctx context.Context, key string, actorID uuid.UUID, requestPath string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type idempotencyRepository struct {
	db db.DBTX
}

// NewIdempotencyRepository creates a new IdempotencyRepository
func NewIdempotencyRepository(database db.DBTX) IdempotencyRepository {
	return &idempotencyRepository{db: database}
}

// Get returns the stored entry, or nil when the key has not been seen. A
// pending entry has a zero ResponseStatus.
func (r *idempotencyRepository) Get(ctx context.Context, key string, actorID uuid.UUID, requestPath string) (*models.IdempotencyKey, error) {
	query := `
		SELECT key, actor_id, request_path, response_status, response_body, created_at
		FROM idempotency_keys
		WHERE key = $1 AND actor_id = $2 AND request_path = $3
	`

	var idemKey models.IdempotencyKey
	err := r.db.QueryRowContext(ctx, query, key, actorID, requestPath).Scan(
		&idemKey.Key,
		&idemKey.ActorID,
		&idemKey.RequestPath,
		&idemKey.ResponseStatus,
		&idemKey.ResponseBody,
		&idemKey.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get idempotency key: %w", err)
	}

	return &idemKey, nil
}

// Reserve claims a key before the request runs by inserting a pending row.
// It reports false when the key already exists for this actor and path.
func (r *idempotencyRepository) Reserve(ctx context.Context, key string, actorID uuid.UUID, requestPath string) (bool, error) {
	query := `
		INSERT INTO idempotency_keys (key, actor_id, request_path, response_status, response_body, created_at)
		VALUES ($1, $2, $3, 0, '', NOW())
		ON CONFLICT (key, actor_id, request_path) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, key, actorID, requestPath)
	if err != nil {
		return false, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

// Complete records the response of a reserved key. A key that is already
// complete keeps its first response.
func (r *idempotencyRepository) Complete(ctx context.Context, idemKey *models.IdempotencyKey) error {
	query := `
		UPDATE idempotency_keys
		SET response_status = $4, response_body = $5
		WHERE key = $1 AND actor_id = $2 AND request_path = $3 AND response_status = 0
	`

	result, err := r.db.ExecContext(ctx, query,
		idemKey.Key,
		idemKey.ActorID,
		idemKey.RequestPath,
		idemKey.ResponseStatus,
		idemKey.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("failed to complete idempotency key: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("idempotency key is not pending: %w", models.ErrNotFound)
	}
	return nil
}

// Release drops a pending reservation so the key can be retried
func (r *idempotencyRepository) Release(ctx context.Context, key string, actorID uuid.UUID, requestPath string) error {
	query := `
		DELETE FROM idempotency_keys
		WHERE key = $1 AND actor_id = $2 AND request_path = $3 AND response_status = 0
	`

	if _, err := r.db.ExecContext(ctx, query, key, actorID, requestPath); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}

// DeleteOlderThan purges keys created before cutoff and returns how many were removed
func (r *idempotencyRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM idempotency_keys WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge idempotency keys: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}
