package repository

import (
	"context"
	"testing"

	"github.com/benx421/points-exchange/internal/db"
	"github.com/benx421/points-exchange/internal/db/dbtest"
	"github.com/benx421/points-exchange/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()
	return dbtest.Open(t)
}

// createAccount inserts a fresh account with the given balance
func createAccount(t *testing.T, database *db.DB, balance int64) *models.Account {
	t.Helper()

	repo := NewAccountRepository(database)
	account, created, err := repo.Create(context.Background(), uuid.New())
	require.NoError(t, err, "failed to create account")
	require.True(t, created, "expected a new account")

	if balance != 0 {
		require.NoError(t, repo.UpdateBalance(context.Background(), account.ID, balance), "failed to seed balance")
		account.Balance = balance
	}
	return account
}

// createProduct inserts a fresh active product owned by a new store
func createProduct(t *testing.T, database *db.DB, requiredPoints, stock int64) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:             uuid.New(),
		StoreID:        uuid.New(),
		Name:           "Coffee voucher",
		Memo:           "one medium drip",
		RequiredPoints: requiredPoints,
		Stock:          stock,
		IsActive:       true,
	}
	require.NoError(t, NewProductRepository(database).Create(context.Background(), product), "failed to create product")
	return product
}

// createVoucher inserts a pending voucher for owner and product
func createVoucher(t *testing.T, database *db.DB, ownerID, productID uuid.UUID) *models.Voucher {
	t.Helper()

	voucher := &models.Voucher{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		ProductID:   productID,
		Code:        "EX" + uuid.NewString()[:8],
		Quantity:    1,
		PointsSpent: 100,
		Status:      models.VoucherStatusPending,
	}
	require.NoError(t, NewVoucherRepository(database).Create(context.Background(), voucher), "failed to create voucher")
	return voucher
}
