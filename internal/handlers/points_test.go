package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/benx421/points-exchange/internal/models"
	"github.com/benx421/points-exchange/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateDeposit_Success(t *testing.T) {
	svc := newTestServices(t)
	member := newActor(models.RoleMember)
	txnID := uuid.New()

	svc.depositor.On("Deposit", mock.Anything, member.ID, int64(100), "welcome bonus").
		Return(&service.DepositResult{
			Transaction: &models.Transaction{
				ID:           txnID,
				OwnerID:      member.ID,
				Type:         models.TransactionTypeDeposit,
				Amount:       100,
				BalanceAfter: 350,
				IsSuccess:    true,
				Memo:         "welcome bonus",
				CreatedAt:    time.Now().UTC(),
			},
			BalanceBefore: 250,
			BalanceAfter:  350,
		}, nil)

	rec := doRequest(t, newTestRouter(t, svc), http.MethodPost, "/api/v1/points/deposits", &member,
		map[string]any{"amount": 100, "memo": "welcome bonus"})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeBody[DepositResponse](t, rec)
	assert.Equal(t, txnID, resp.TransactionID)
	assert.Equal(t, int64(100), resp.Amount)
	assert.Equal(t, int64(250), resp.BalanceBefore)
	assert.Equal(t, int64(350), resp.BalanceAfter)
	assert.Equal(t, "welcome bonus", resp.Memo)
}

func TestCreateDeposit_Rejected(t *testing.T) {
	tests := []struct {
		name       string
		role       models.Role
		body       map[string]any
		wantStatus int
		wantCode   string
	}{
		{"store cannot deposit", models.RoleStore, map[string]any{"amount": 100}, http.StatusForbidden, "unauthorized"},
		{"zero amount", models.RoleMember, map[string]any{"amount": 0}, http.StatusBadRequest, "validation_error"},
		{"negative amount", models.RoleMember, map[string]any{"amount": -5}, http.StatusBadRequest, "validation_error"},
		{"missing amount", models.RoleMember, map[string]any{"memo": "x"}, http.StatusBadRequest, "validation_error"},
		{"unknown field", models.RoleMember, map[string]any{"amount": 10, "owner_id": uuid.NewString()}, http.StatusBadRequest, "validation_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestServices(t)
			actor := newActor(tt.role)

			rec := doRequest(t, newTestRouter(t, svc), http.MethodPost, "/api/v1/points/deposits", &actor, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeBody[ErrorResponse](t, rec).Error)
			svc.depositor.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCreateDeposit_WalletLocked(t *testing.T) {
	svc := newTestServices(t)
	member := newActor(models.RoleMember)

	svc.depositor.On("Deposit", mock.Anything, member.ID, int64(10), "").
		Return(nil, &service.ServiceError{Code: service.ErrCodeWalletLocked, Message: "wallet is locked"})

	rec := doRequest(t, newTestRouter(t, svc), http.MethodPost, "/api/v1/points/deposits", &member,
		map[string]any{"amount": 10})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "wallet_locked", decodeBody[ErrorResponse](t, rec).Error)
}

func TestCreateExchange_Success(t *testing.T) {
	svc := newTestServices(t)
	member := newActor(models.RoleMember)
	productID := uuid.New()
	voucherID := uuid.New()
	txnID := uuid.New()

	svc.exchanger.On("Exchange", mock.Anything, member.ID, productID, 2).
		Return(&service.ExchangeResult{
			Voucher: &models.Voucher{
				ID:          voucherID,
				Code:        "EX20261019A1B2C3",
				OwnerID:     member.ID,
				ProductID:   productID,
				Quantity:    2,
				PointsSpent: 600,
				Status:      models.VoucherStatusPending,
			},
			Transaction:   &models.Transaction{ID: txnID, Amount: -600},
			Product:       &models.Product{ID: productID, Name: "Coffee"},
			BalanceBefore: 1000,
			BalanceAfter:  400,
		}, nil)

	rec := doRequest(t, newTestRouter(t, svc), http.MethodPost, "/api/v1/points/exchanges", &member,
		map[string]any{"product_id": productID, "quantity": 2})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeBody[ExchangeResponse](t, rec)
	assert.Equal(t, voucherID, resp.ExchangeID)
	assert.Equal(t, "EX20261019A1B2C3", resp.Code)
	assert.Equal(t, productID, resp.Product.ID)
	assert.Equal(t, "Coffee", resp.Product.Name)
	assert.Equal(t, 2, resp.Quantity)
	assert.Equal(t, int64(600), resp.PointsSpent)
	assert.Equal(t, int64(1000), resp.BalanceBefore)
	assert.Equal(t, int64(400), resp.BalanceAfter)
	assert.Equal(t, txnID, resp.TransactionID)
	assert.Equal(t, models.VoucherStatusPending, resp.Status)
}

func TestCreateExchange_QuantityDefaultsToOne(t *testing.T) {
	svc := newTestServices(t)
	member := newActor(models.RoleMember)
	productID := uuid.New()

	svc.exchanger.On("Exchange", mock.Anything, member.ID, productID, 1).
		Return(&service.ExchangeResult{
			Voucher: &models.Voucher{
				ID:          uuid.New(),
				Code:        "EX20261019D4E5F6",
				OwnerID:     member.ID,
				ProductID:   productID,
				Quantity:    1,
				PointsSpent: 300,
				Status:      models.VoucherStatusPending,
			},
			Transaction:   &models.Transaction{ID: uuid.New(), Amount: -300},
			Product:       &models.Product{ID: productID, Name: "Coffee"},
			BalanceBefore: 1000,
			BalanceAfter:  700,
		}, nil)

	rec := doRequest(t, newTestRouter(t, svc), http.MethodPost, "/api/v1/points/exchanges", &member,
		map[string]any{"product_id": productID})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 1, decodeBody[ExchangeResponse](t, rec).Quantity)
}

func TestCreateExchange_ServiceErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantDetails map[string]int64
	}{
		{
			name:        "insufficient balance",
			err:         &service.ServiceError{Code: service.ErrCodeInsufficientBalance, Message: "insufficient balance", Details: map[string]int64{"required": 600, "balance": 100}},
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    "insufficient_balance",
			wantDetails: map[string]int64{"required": 600, "balance": 100},
		},
		{
			name:        "insufficient stock",
			err:         &service.ServiceError{Code: service.ErrCodeInsufficientStock, Message: "insufficient stock", Details: map[string]int64{"required": 2, "available": 1}},
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    "insufficient_stock",
			wantDetails: map[string]int64{"required": 2, "available": 1},
		},
		{
			name:       "product unavailable",
			err:        &service.ServiceError{Code: service.ErrCodeProductUnavailable, Message: "product unavailable"},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "product_unavailable",
		},
		{
			name:       "account missing",
			err:        &service.ServiceError{Code: service.ErrCodeAccountNotFound, Message: "account not found"},
			wantStatus: http.StatusNotFound,
			wantCode:   "account_not_found",
		},
		{
			name:       "conflict",
			err:        &service.ServiceError{Code: service.ErrCodeConflict, Message: "could not issue a unique voucher code"},
			wantStatus: http.StatusConflict,
			wantCode:   "conflict",
		},
		{
			name:       "unexpected error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestServices(t)
			member := newActor(models.RoleMember)
			productID := uuid.New()

			svc.exchanger.On("Exchange", mock.Anything, member.ID, productID, 1).Return(nil, tt.err)

			rec := doRequest(t, newTestRouter(t, svc), http.MethodPost, "/api/v1/points/exchanges", &member,
				map[string]any{"product_id": productID, "quantity": 1})

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeBody[ErrorResponse](t, rec)
			assert.Equal(t, tt.wantCode, resp.Error)
			assert.Equal(t, tt.wantDetails, resp.Details)
		})
	}
}

func TestCreateExchange_TransientFailureSetsRetryAfter(t *testing.T) {
	svc := newTestServices(t)
	member := newActor(models.RoleMember)
	productID := uuid.New()

	svc.exchanger.On("Exchange", mock.Anything, member.ID, productID, 1).
		Return(nil, &service.ServiceError{Code: service.ErrCodeTransientFailure, Message: "try again"})

	rec := doRequest(t, newTestRouter(t, svc), http.MethodPost, "/api/v1/points/exchanges", &member,
		map[string]any{"product_id": productID, "quantity": 1})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Equal(t, "transient_failure", decodeBody[ErrorResponse](t, rec).Error)
}

func TestCreateExchange_QuantityOutOfRange(t *testing.T) {
	for _, quantity := range []int{0, 6} {
		svc := newTestServices(t)
		member := newActor(models.RoleMember)

		rec := doRequest(t, newTestRouter(t, svc), http.MethodPost, "/api/v1/points/exchanges", &member,
			map[string]any{"product_id": uuid.New(), "quantity": quantity})

		assert.Equal(t, http.StatusBadRequest, rec.Code, "quantity %d", quantity)
	}
}

func TestCreateExchange_InternalErrorHidesMessage(t *testing.T) {
	svc := newTestServices(t)
	member := newActor(models.RoleMember)
	productID := uuid.New()

	svc.exchanger.On("Exchange", mock.Anything, member.ID, productID, 1).
		Return(nil, &service.ServiceError{Code: service.ErrCodeInternalError, Message: "failed to load product", Err: errors.New("pq: relation missing")})

	rec := doRequest(t, newTestRouter(t, svc), http.MethodPost, "/api/v1/points/exchanges", &member,
		map[string]any{"product_id": productID, "quantity": 1})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decodeBody[ErrorResponse](t, rec).Message)
}
