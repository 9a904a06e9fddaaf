package service

import (
	"context"

	"github.com/benx421/points-exchange/internal/db"
	"github.com/benx421/points-exchange/internal/models"
	"github.com/benx421/points-exchange/internal/repository"
	"github.com/google/uuid"
)

// TransactionService reads the points ledger
type TransactionService struct {
	db *db.DB
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(database *db.DB) *TransactionService {
	return &TransactionService{db: database}
}

// ListTransactions returns ledger entries visible to actor. Members see only
// their own entries. Admins see all and may filter by owner. Stores have no
// ledger access.
func (s *TransactionService) ListTransactions(ctx context.Context, actor models.Actor, filter models.TransactionFilter, page models.Page) ([]*models.Transaction, int, error) {
	return s.listTransactions(ctx, repository.NewTransactionRepository(s.db), actor, filter, page)
}

func (s *TransactionService) listTransactions(
	ctx context.Context,
	transactionRepo repository.TransactionRepository,
	actor models.Actor,
	filter models.TransactionFilter,
	page models.Page,
) ([]*models.Transaction, int, error) {
	switch actor.Role {
	case models.RoleMember:
		actorID := actor.ID
		filter.OwnerID = &actorID
	case models.RoleAdmin:
	default:
		return nil, 0, unauthorizedError("not allowed to view transactions")
	}

	if filter.Type != nil && !filter.Type.Valid() {
		return nil, 0, validationError("invalid tx_type")
	}

	txns, total, err := transactionRepo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, internalError("failed to list transactions", err)
	}

	return txns, total, nil
}

// GetTransaction retrieves one ledger entry visible to actor
func (s *TransactionService) GetTransaction(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Transaction, error) {
	return s.getTransaction(ctx, repository.NewTransactionRepository(s.db), actor, id)
}

func (s *TransactionService) getTransaction(ctx context.Context, transactionRepo repository.TransactionRepository, actor models.Actor, id uuid.UUID) (*models.Transaction, error) {
	if actor.Role != models.RoleMember && !actor.IsAdmin() {
		return nil, unauthorizedError("not allowed to view transactions")
	}

	txn, err := transactionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrCodeTransactionNotFound, "transaction not found")
	}

	if !actor.IsAdmin() && txn.OwnerID != actor.ID {
		return nil, unauthorizedError("not allowed to view this transaction")
	}

	return txn, nil
}
