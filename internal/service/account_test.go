package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/benx421/points-exchange/internal/models"
	"github.com/benx421/points-exchange/internal/repository/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_CreateAccount(t *testing.T) {
	t.Run("creates account", func(t *testing.T) {
		mockAccountRepo := mocks.NewMockAccountRepository(t)
		service := NewAccountService(nil)
		ctx := context.Background()

		ownerID := uuid.New()
		account := &models.Account{ID: uuid.New(), OwnerID: ownerID}
		mockAccountRepo.On("Create", ctx, ownerID).Return(account, true, nil)

		got, created, err := service.createAccount(ctx, mockAccountRepo, ownerID)

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, account, got)
	})

	t.Run("returns existing account", func(t *testing.T) {
		mockAccountRepo := mocks.NewMockAccountRepository(t)
		service := NewAccountService(nil)
		ctx := context.Background()

		ownerID := uuid.New()
		account := &models.Account{ID: uuid.New(), OwnerID: ownerID, Balance: 70}
		mockAccountRepo.On("Create", ctx, ownerID).Return(account, false, nil)

		got, created, err := service.createAccount(ctx, mockAccountRepo, ownerID)

		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, int64(70), got.Balance)
	})

	t.Run("nil owner", func(t *testing.T) {
		mockAccountRepo := mocks.NewMockAccountRepository(t)
		service := NewAccountService(nil)

		_, _, err := service.createAccount(context.Background(), mockAccountRepo, uuid.Nil)

		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeValidation, svcErr.Code)
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		mockAccountRepo := mocks.NewMockAccountRepository(t)
		service := NewAccountService(nil)
		ctx := context.Background()

		ownerID := uuid.New()
		mockAccountRepo.On("Create", ctx, ownerID).Return(nil, false, errors.New("connection refused"))

		_, _, err := service.createAccount(ctx, mockAccountRepo, ownerID)

		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeInternalError, svcErr.Code)
		}
	})
}

func TestAccountService_GetAccount(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name     string
		actor    models.Actor
		wantCode string
	}{
		{name: "owner", actor: models.Actor{ID: ownerID, Role: models.RoleMember}},
		{name: "admin", actor: models.Actor{ID: uuid.New(), Role: models.RoleAdmin}},
		{name: "someone else", actor: models.Actor{ID: uuid.New(), Role: models.RoleMember}, wantCode: ErrCodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAccountRepo := mocks.NewMockAccountRepository(t)
			service := NewAccountService(nil)
			ctx := context.Background()

			if tt.wantCode == "" {
				mockAccountRepo.On("FindByOwner", ctx, ownerID).Return(&models.Account{OwnerID: ownerID}, nil)
			}

			account, err := service.getAccount(ctx, mockAccountRepo, tt.actor, ownerID)

			if tt.wantCode != "" {
				var svcErr *ServiceError
				if assert.ErrorAs(t, err, &svcErr) {
					assert.Equal(t, tt.wantCode, svcErr.Code)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ownerID, account.OwnerID)
		})
	}
}

func TestAccountService_SetLocked(t *testing.T) {
	t.Run("locks account", func(t *testing.T) {
		mockAccountRepo := mocks.NewMockAccountRepository(t)
		service := NewAccountService(nil)
		ctx := context.Background()

		ownerID := uuid.New()
		mockAccountRepo.On("SetLocked", ctx, ownerID, true).Return(&models.Account{OwnerID: ownerID, IsLocked: true}, nil)

		account, err := service.setLocked(ctx, mockAccountRepo, ownerID, true)

		require.NoError(t, err)
		assert.True(t, account.IsLocked)
	})

	t.Run("unknown account", func(t *testing.T) {
		mockAccountRepo := mocks.NewMockAccountRepository(t)
		service := NewAccountService(nil)
		ctx := context.Background()

		ownerID := uuid.New()
		mockAccountRepo.On("SetLocked", ctx, ownerID, false).Return(nil, fmt.Errorf("account not found: %w", models.ErrNotFound))

		_, err := service.setLocked(ctx, mockAccountRepo, ownerID, false)

		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeAccountNotFound, svcErr.Code)
		}
	})
}
