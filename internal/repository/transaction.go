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

// TransactionRepository defines the interface for the append-only ledger.
// Entries are never updated or deleted.
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	List(ctx context.Context, filter models.TransactionFilter, page models.Page) ([]*models.Transaction, int, error)
}

type transactionRepository struct {
	db db.DBTX
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(database db.DBTX) TransactionRepository {
	return &transactionRepository{db: database}
}

const transactionColumns = `id, owner_id, amount, tx_type, is_success, balance_after, memo, created_at`

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var txn models.Transaction
	err := row.Scan(
		&txn.ID,
		&txn.OwnerID,
		&txn.Amount,
		&txn.Type,
		&txn.IsSuccess,
		&txn.BalanceAfter,
		&txn.Memo,
		&txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// Create appends a ledger entry and fills in its creation time
func (r *transactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, owner_id, amount, tx_type, is_success, balance_after, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		txn.ID,
		txn.OwnerID,
		txn.Amount,
		txn.Type,
		txn.IsSuccess,
		txn.BalanceAfter,
		txn.Memo,
	).Scan(&txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// FindByID retrieves a ledger entry by its UUID
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	txn, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction by id: %w", err)
	}
	return txn, nil
}

// List returns ledger entries matching filter, newest first, with the total count
func (r *transactionRepository) List(ctx context.Context, filter models.TransactionFilter, page models.Page) ([]*models.Transaction, int, error) {
	var where whereClause
	if filter.OwnerID != nil {
		where.add("owner_id = $%d", *filter.OwnerID)
	}
	if filter.Type != nil {
		where.add("tx_type = $%d", *filter.Type)
	}
	if filter.IsSuccess != nil {
		where.add("is_success = $%d", *filter.IsSuccess)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	limit, args := where.paginate(page)
	query := `SELECT ` + transactionColumns + ` FROM transactions` + where.String() + ` ORDER BY created_at DESC, id` + limit

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]*models.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, total, nil
}
