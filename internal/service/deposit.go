package service

import (
	"context"
	"database/sql"
	"math"

	"github.com/benx421/points-exchange/internal/models"
	"github.com/benx421/points-exchange/internal/repository"
	"github.com/google/uuid"
)

// DepositResult is the outcome of a committed deposit
type DepositResult struct {
	Transaction   *models.Transaction
	BalanceBefore int64
	BalanceAfter  int64
}

// DepositService credits points to member accounts
type DepositService struct {
	runner *Runner
}

// NewDepositService creates a new DepositService
func NewDepositService(runner *Runner) *DepositService {
	return &DepositService{runner: runner}
}

// Deposit adds amount points to the owner's balance and records the ledger entry
func (s *DepositService) Deposit(ctx context.Context, ownerID uuid.UUID, amount int64, memo string) (result *DepositResult, err error) {
	defer func() { recordOutcome(OperationDeposit, err) }()

	if err := ValidateAmount(amount); err != nil {
		return nil, validationError(err.Error())
	}
	if err := ValidateMemo(memo); err != nil {
		return nil, validationError(err.Error())
	}

	err = s.runner.Run(ctx, OperationDeposit, func(tx *sql.Tx) error {
		var txErr error
		result, txErr = s.performDeposit(ctx,
			repository.NewAccountRepository(tx),
			repository.NewTransactionRepository(tx),
			ownerID, amount, memo,
		)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// performDeposit contains the core deposit business logic
func (s *DepositService) performDeposit(
	ctx context.Context,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	ownerID uuid.UUID,
	amount int64,
	memo string,
) (*DepositResult, error) {
	account, err := accountRepo.FindByOwnerForUpdate(ctx, ownerID)
	if err != nil {
		return nil, lookupError(err, ErrCodeAccountNotFound, "account not found")
	}

	if account.IsLocked {
		return nil, &ServiceError{
			Code:    ErrCodeWalletLocked,
			Message: "account is locked",
		}
	}

	if amount > math.MaxInt64-account.Balance {
		return nil, validationError("deposit would overflow the account balance")
	}
	newBalance := account.Balance + amount

	if err := accountRepo.UpdateBalance(ctx, account.ID, newBalance); err != nil {
		return nil, internalError("failed to update balance", err)
	}

	txn := &models.Transaction{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Amount:       amount,
		Type:         models.TransactionTypeDeposit,
		IsSuccess:    true,
		BalanceAfter: newBalance,
		Memo:         memo,
	}
	if err := transactionRepo.Create(ctx, txn); err != nil {
		return nil, internalError("failed to record deposit", err)
	}

	return &DepositResult{
		Transaction:   txn,
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
	}, nil
}
