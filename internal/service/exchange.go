package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/benx421/points-exchange/internal/models"
	"github.com/benx421/points-exchange/internal/repository"
	"github.com/benx421/points-exchange/internal/voucher"
	"github.com/google/uuid"
)

// maxCodeAttempts bounds regeneration when a candidate code is already taken
const maxCodeAttempts = 10

// ExchangeResult is the outcome of a committed exchange
type ExchangeResult struct {
	Voucher       *models.Voucher
	Transaction   *models.Transaction
	Product       *models.Product
	BalanceBefore int64
	BalanceAfter  int64
}

// ExchangeService spends member points on products and issues vouchers
type ExchangeService struct {
	runner *Runner
	codes  voucher.Generator
	now    func() time.Time
}

// NewExchangeService creates a new ExchangeService
func NewExchangeService(runner *Runner, codes voucher.Generator) *ExchangeService {
	return &ExchangeService{
		runner: runner,
		codes:  codes,
		now:    time.Now,
	}
}

// Exchange spends points for quantity units of a product. Stock, balance,
// the voucher and the ledger entry commit together or not at all.
func (s *ExchangeService) Exchange(ctx context.Context, ownerID, productID uuid.UUID, quantity int) (result *ExchangeResult, err error) {
	defer func() { recordOutcome(OperationExchange, err) }()

	if err := ValidateQuantity(quantity); err != nil {
		return nil, validationError(err.Error())
	}

	err = s.runner.Run(ctx, OperationExchange, func(tx *sql.Tx) error {
		var txErr error
		result, txErr = s.performExchange(ctx,
			repository.NewProductRepository(tx),
			repository.NewAccountRepository(tx),
			repository.NewVoucherRepository(tx),
			repository.NewTransactionRepository(tx),
			ownerID, productID, quantity,
		)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// performExchange contains the core exchange business logic. The product row
// is always locked before the account row.
func (s *ExchangeService) performExchange(
	ctx context.Context,
	productRepo repository.ProductRepository,
	accountRepo repository.AccountRepository,
	voucherRepo repository.VoucherRepository,
	transactionRepo repository.TransactionRepository,
	ownerID, productID uuid.UUID,
	quantity int,
) (*ExchangeResult, error) {
	product, err := productRepo.FindByIDForUpdate(ctx, productID, true)
	if err != nil {
		return nil, lookupError(err, ErrCodeProductUnavailable, "product is not available")
	}

	qty := int64(quantity)
	if product.Stock < qty {
		return nil, &ServiceError{
			Code:    ErrCodeInsufficientStock,
			Message: "insufficient stock",
			Details: map[string]int64{"required": qty, "available": product.Stock},
		}
	}

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

	if product.RequiredPoints > math.MaxInt64/qty {
		return nil, validationError("exchange total is out of range")
	}
	total := product.RequiredPoints * qty
	if account.Balance < total {
		return nil, &ServiceError{
			Code:    ErrCodeInsufficientBalance,
			Message: "insufficient balance",
			Details: map[string]int64{"required": total, "balance": account.Balance},
		}
	}

	newBalance := account.Balance - total
	newStock := product.Stock - qty

	if err := productRepo.DecrementStock(ctx, product.ID, qty); err != nil {
		if errors.Is(err, models.ErrInsufficientStock) {
			return nil, &ServiceError{
				Code:    ErrCodeInsufficientStock,
				Message: "insufficient stock",
				Details: map[string]int64{"required": qty, "available": product.Stock},
			}
		}
		return nil, internalError("failed to update stock", err)
	}

	if err := accountRepo.UpdateBalance(ctx, account.ID, newBalance); err != nil {
		return nil, internalError("failed to update balance", err)
	}

	now := s.now()
	code, err := s.issueCode(ctx, voucherRepo, now)
	if err != nil {
		return nil, err
	}

	issued := &models.Voucher{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		ProductID:   product.ID,
		Code:        code,
		Quantity:    quantity,
		PointsSpent: total,
		Status:      models.VoucherStatusPending,
	}
	if err := voucherRepo.Create(ctx, issued); err != nil {
		if errors.Is(err, models.ErrDuplicateCode) {
			return nil, &ServiceError{
				Code:    ErrCodeConflict,
				Message: "voucher code collision",
				Err:     err,
			}
		}
		return nil, internalError("failed to create voucher", err)
	}

	txn := &models.Transaction{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Amount:       -total,
		Type:         models.TransactionTypeRedemption,
		IsSuccess:    true,
		BalanceAfter: newBalance,
		Memo:         exchangeMemo(product.Name, quantity),
	}
	if err := transactionRepo.Create(ctx, txn); err != nil {
		return nil, internalError("failed to record exchange", err)
	}

	product.Stock = newStock

	return &ExchangeResult{
		Voucher:       issued,
		Transaction:   txn,
		Product:       product,
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
	}, nil
}

// issueCode returns a code no stored voucher uses yet. The unique index still
// guards against a concurrent insert of the same code.
func (s *ExchangeService) issueCode(ctx context.Context, voucherRepo repository.VoucherRepository, now time.Time) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := s.codes.Generate(now)

		exists, err := voucherRepo.CodeExists(ctx, code)
		if err != nil {
			return "", internalError("failed to check voucher code", err)
		}
		if !exists {
			return code, nil
		}
	}

	return "", &ServiceError{
		Code:    ErrCodeConflict,
		Message: fmt.Sprintf("could not generate a unique voucher code after %d attempts", maxCodeAttempts),
	}
}

func exchangeMemo(productName string, quantity int) string {
	return fmt.Sprintf("Exchange: %s x%d", productName, quantity)
}
