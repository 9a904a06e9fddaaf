package service

import (
	"context"

	"github.com/benx421/points-exchange/internal/models"
	"github.com/google/uuid"
)

// HealthChecker validates system health.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// Depositor credits points to accounts
type Depositor interface {
	Deposit(ctx context.Context, ownerID uuid.UUID, amount int64, memo string) (*DepositResult, error)
}

// Exchanger spends points on products
type Exchanger interface {
	Exchange(ctx context.Context, ownerID, productID uuid.UUID, quantity int) (*ExchangeResult, error)
}

// VoucherRedeemer verifies and reads exchange vouchers
type VoucherRedeemer interface {
	VerifyVoucher(ctx context.Context, voucherID uuid.UUID, actor models.Actor) (*VoucherView, error)
	LookupVoucherByCode(ctx context.Context, code string, actor models.Actor) (*VoucherView, error)
	GetVoucher(ctx context.Context, voucherID uuid.UUID, actor models.Actor) (*VoucherView, error)
	ListVouchers(ctx context.Context, actor models.Actor, filter models.VoucherFilter, page models.Page) ([]*VoucherView, int, error)
}

// AccountManager provisions and administers accounts
type AccountManager interface {
	CreateAccount(ctx context.Context, ownerID uuid.UUID) (*models.Account, bool, error)
	GetAccount(ctx context.Context, actor models.Actor, ownerID uuid.UUID) (*models.Account, error)
	LockAccount(ctx context.Context, ownerID uuid.UUID) (*models.Account, error)
	UnlockAccount(ctx context.Context, ownerID uuid.UUID) (*models.Account, error)
}

// LedgerReader reads ledger entries
type LedgerReader interface {
	ListTransactions(ctx context.Context, actor models.Actor, filter models.TransactionFilter, page models.Page) ([]*models.Transaction, int, error)
	GetTransaction(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Transaction, error)
}

// Catalog manages store products
type Catalog interface {
	CreateProduct(ctx context.Context, actor models.Actor, input NewProduct) (*models.Product, error)
	UpdateProduct(ctx context.Context, actor models.Actor, productID uuid.UUID, update models.ProductUpdate) (*models.Product, error)
	DeactivateProduct(ctx context.Context, actor models.Actor, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, filter models.ProductFilter, page models.Page) ([]*models.Product, int, error)
}

// Ensure concrete types implement interfaces
var (
	_ Depositor       = (*DepositService)(nil)
	_ Exchanger       = (*ExchangeService)(nil)
	_ VoucherRedeemer = (*VoucherService)(nil)
	_ AccountManager  = (*AccountService)(nil)
	_ LedgerReader    = (*TransactionService)(nil)
	_ Catalog         = (*ProductService)(nil)
)
