package service

import (
	"context"

	"github.com/benx421/points-exchange/internal/db"
	"github.com/benx421/points-exchange/internal/models"
	"github.com/benx421/points-exchange/internal/repository"
	"github.com/google/uuid"
)

// AccountService provisions and administers point accounts
type AccountService struct {
	db *db.DB
}

// NewAccountService creates a new AccountService
func NewAccountService(database *db.DB) *AccountService {
	return &AccountService{db: database}
}

// CreateAccount opens an empty, unlocked account for ownerID. Calling it for
// an owner that already has an account returns that account with created
// set to false.
func (s *AccountService) CreateAccount(ctx context.Context, ownerID uuid.UUID) (*models.Account, bool, error) {
	return s.createAccount(ctx, repository.NewAccountRepository(s.db), ownerID)
}

func (s *AccountService) createAccount(ctx context.Context, accountRepo repository.AccountRepository, ownerID uuid.UUID) (*models.Account, bool, error) {
	if ownerID == uuid.Nil {
		return nil, false, validationError("owner_id is required")
	}

	account, created, err := accountRepo.Create(ctx, ownerID)
	if err != nil {
		return nil, false, internalError("failed to create account", err)
	}

	return account, created, nil
}

// GetAccount returns ownerID's account. Only admins may read accounts other
// than their own.
func (s *AccountService) GetAccount(ctx context.Context, actor models.Actor, ownerID uuid.UUID) (*models.Account, error) {
	return s.getAccount(ctx, repository.NewAccountRepository(s.db), actor, ownerID)
}

func (s *AccountService) getAccount(ctx context.Context, accountRepo repository.AccountRepository, actor models.Actor, ownerID uuid.UUID) (*models.Account, error) {
	if !actor.IsAdmin() && actor.ID != ownerID {
		return nil, unauthorizedError("not allowed to view this account")
	}

	account, err := accountRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, lookupError(err, ErrCodeAccountNotFound, "account not found")
	}

	return account, nil
}

// LockAccount freezes the account so deposits and exchanges are rejected
func (s *AccountService) LockAccount(ctx context.Context, ownerID uuid.UUID) (*models.Account, error) {
	return s.setLocked(ctx, repository.NewAccountRepository(s.db), ownerID, true)
}

// UnlockAccount lifts a freeze
func (s *AccountService) UnlockAccount(ctx context.Context, ownerID uuid.UUID) (*models.Account, error) {
	return s.setLocked(ctx, repository.NewAccountRepository(s.db), ownerID, false)
}

func (s *AccountService) setLocked(ctx context.Context, accountRepo repository.AccountRepository, ownerID uuid.UUID, locked bool) (*models.Account, error) {
	account, err := accountRepo.SetLocked(ctx, ownerID, locked)
	if err != nil {
		return nil, lookupError(err, ErrCodeAccountNotFound, "account not found")
	}

	return account, nil
}
