// Package repository provides data access layer implementations for the points service.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/benx421/points-exchange/internal/db"
	"github.com/benx421/points-exchange/internal/models"
	"github.com/google/uuid"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	Create(ctx context.Context, ownerID uuid.UUID) (*models.Account, bool, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Account, error)
	FindByOwnerForUpdate(ctx context.Context, ownerID uuid.UUID) (*models.Account, error)
	UpdateBalance(ctx context.Context, accountID uuid.UUID, balance int64) error
	SetLocked(ctx context.Context, ownerID uuid.UUID, locked bool) (*models.Account, error)
}

// accountRepository implements AccountRepository
type accountRepository struct {
	db db.DBTX
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(database db.DBTX) AccountRepository {
	return &accountRepository{db: database}
}

const accountColumns = `id, owner_id, balance, is_locked, created_at, updated_at`

func scanAccount(row rowScanner) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID,
		&account.OwnerID,
		&account.Balance,
		&account.IsLocked,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Create inserts a zero-balance, unlocked account for ownerID. When the owner
// already has one, the existing account is returned and created is false.
func (r *accountRepository) Create(ctx context.Context, ownerID uuid.UUID) (*models.Account, bool, error) {
	query := `
		INSERT INTO accounts (id, owner_id)
		VALUES ($1, $2)
		ON CONFLICT (owner_id) DO NOTHING
		RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, uuid.New(), ownerID))
	if err == nil {
		return account, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to create account: %w", err)
	}

	existing, err := r.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// FindByOwner retrieves the account belonging to ownerID
func (r *accountRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_id = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account by owner: %w", err)
	}
	return account, nil
}

// FindByOwnerForUpdate retrieves the account and holds an exclusive row lock
// on it until the enclosing transaction ends
func (r *accountRepository) FindByOwnerForUpdate(ctx context.Context, ownerID uuid.UUID) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_id = $1 FOR UPDATE`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	return account, nil
}

// UpdateBalance sets the account balance. Callers must hold the row lock.
func (r *accountRepository) UpdateBalance(ctx context.Context, accountID uuid.UUID, balance int64) error {
	query := `
		UPDATE accounts
		SET balance = $2,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, accountID, balance)
	if err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("account not found: %w", models.ErrNotFound)
	}

	return nil
}

// SetLocked freezes or unfreezes the owner's account
func (r *accountRepository) SetLocked(ctx context.Context, ownerID uuid.UUID, locked bool) (*models.Account, error) {
	query := `
		UPDATE accounts
		SET is_locked = $2,
		    updated_at = NOW()
		WHERE owner_id = $1
		RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, ownerID, locked))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set account lock: %w", err)
	}
	return account, nil
}
