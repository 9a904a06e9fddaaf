package handlers

import (
	"time"

	"github.com/benx421/points-exchange/internal/models"
	"github.com/benx421/points-exchange/internal/service"
	"github.com/google/uuid"
)

// DepositResponse is returned by POST /api/v1/points/deposits
type DepositResponse struct {
	CreatedAt     time.Time `json:"created_at"`
	Memo          string    `json:"memo"`
	Amount        int64     `json:"amount"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	TransactionID uuid.UUID `json:"transaction_id"`
}

func newDepositResponse(result *service.DepositResult) DepositResponse {
	return DepositResponse{
		TransactionID: result.Transaction.ID,
		Amount:        result.Transaction.Amount,
		BalanceBefore: result.BalanceBefore,
		BalanceAfter:  result.BalanceAfter,
		Memo:          result.Transaction.Memo,
		CreatedAt:     result.Transaction.CreatedAt,
	}
}

// ProductRef names the product a voucher was issued for
type ProductRef struct {
	StoreID *uuid.UUID `json:"store_id,omitempty"`
	Name    string     `json:"name"`
	ID      uuid.UUID  `json:"id"`
}

// ExchangeResponse is returned by POST /api/v1/points/exchanges
type ExchangeResponse struct {
	Product       ProductRef           `json:"product"`
	Code          string               `json:"code"`
	Status        models.VoucherStatus `json:"status"`
	Quantity      int                  `json:"quantity"`
	PointsSpent   int64                `json:"points_spent"`
	BalanceBefore int64                `json:"balance_before"`
	BalanceAfter  int64                `json:"balance_after"`
	ExchangeID    uuid.UUID            `json:"exchange_id"`
	TransactionID uuid.UUID            `json:"transaction_id"`
}

func newExchangeResponse(result *service.ExchangeResult) ExchangeResponse {
	return ExchangeResponse{
		ExchangeID: result.Voucher.ID,
		Code:       result.Voucher.Code,
		Product: ProductRef{
			ID:   result.Product.ID,
			Name: result.Product.Name,
		},
		Quantity:      result.Voucher.Quantity,
		PointsSpent:   result.Voucher.PointsSpent,
		BalanceBefore: result.BalanceBefore,
		BalanceAfter:  result.BalanceAfter,
		TransactionID: result.Transaction.ID,
		Status:        result.Voucher.Status,
	}
}

// VoucherResponse renders an exchange voucher
type VoucherResponse struct {
	CreatedAt   time.Time            `json:"created_at"`
	VerifiedAt  *time.Time           `json:"verified_at,omitempty"`
	VerifiedBy  *uuid.UUID           `json:"verified_by,omitempty"`
	Product     ProductRef           `json:"product"`
	Code        string               `json:"code"`
	Status      models.VoucherStatus `json:"status"`
	Quantity    int                  `json:"quantity"`
	PointsSpent int64                `json:"points_spent"`
	ID          uuid.UUID            `json:"id"`
	OwnerID     uuid.UUID            `json:"owner_id"`
}

func newVoucherResponse(view *service.VoucherView) VoucherResponse {
	storeID := view.Product.StoreID
	return VoucherResponse{
		ID:      view.Voucher.ID,
		Code:    view.Voucher.Code,
		OwnerID: view.Voucher.OwnerID,
		Product: ProductRef{
			ID:      view.Product.ID,
			Name:    view.Product.Name,
			StoreID: &storeID,
		},
		Quantity:    view.Voucher.Quantity,
		PointsSpent: view.Voucher.PointsSpent,
		Status:      view.Voucher.Status,
		VerifiedBy:  view.Voucher.VerifiedBy,
		VerifiedAt:  view.Voucher.VerifiedAt,
		CreatedAt:   view.Voucher.CreatedAt,
	}
}

func newVoucherResponses(views []*service.VoucherView) []VoucherResponse {
	out := make([]VoucherResponse, 0, len(views))
	for _, view := range views {
		out = append(out, newVoucherResponse(view))
	}
	return out
}
