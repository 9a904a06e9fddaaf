package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/benx421/points-exchange/internal/models"
	"github.com/benx421/points-exchange/internal/repository/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_CreateProduct(t *testing.T) {
	storeID := uuid.New()

	t.Run("store lists product", func(t *testing.T) {
		mockProductRepo := mocks.NewMockProductRepository(t)
		service := NewProductService(nil, nil)
		ctx := context.Background()

		mockProductRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
			return p.StoreID == storeID && p.Name == "Mug" && p.IsActive && p.Stock == 3 && p.RequiredPoints == 90
		})).Return(nil)

		product, err := service.createProduct(ctx, mockProductRepo,
			models.Actor{ID: storeID, Role: models.RoleStore},
			NewProduct{Name: "  Mug ", RequiredPoints: 90, Stock: 3})

		require.NoError(t, err)
		assert.Equal(t, "Mug", product.Name)
		assert.NotEqual(t, uuid.Nil, product.ID)
	})

	t.Run("member cannot list products", func(t *testing.T) {
		mockProductRepo := mocks.NewMockProductRepository(t)
		service := NewProductService(nil, nil)

		_, err := service.createProduct(context.Background(), mockProductRepo,
			models.Actor{ID: uuid.New(), Role: models.RoleMember}, NewProduct{Name: "Mug"})

		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeUnauthorized, svcErr.Code)
		}
	})

	invalid := []struct {
		name  string
		input NewProduct
	}{
		{name: "blank name", input: NewProduct{Name: "  "}},
		{name: "negative stock", input: NewProduct{Name: "Mug", Stock: -1}},
		{name: "negative price", input: NewProduct{Name: "Mug", RequiredPoints: -1}},
		{name: "long memo", input: NewProduct{Name: "Mug", Memo: strings.Repeat("m", MaxMemoLength+1)}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			mockProductRepo := mocks.NewMockProductRepository(t)
			service := NewProductService(nil, nil)

			_, err := service.createProduct(context.Background(), mockProductRepo,
				models.Actor{ID: storeID, Role: models.RoleStore}, tt.input)

			var svcErr *ServiceError
			if assert.ErrorAs(t, err, &svcErr) {
				assert.Equal(t, ErrCodeValidation, svcErr.Code)
			}
		})
	}
}

func TestProductService_PerformUpdate(t *testing.T) {
	storeID := uuid.New()
	stock := int64(20)
	update := models.ProductUpdate{Stock: &stock}

	tests := []struct {
		name     string
		actor    models.Actor
		wantCode string
	}{
		{name: "owning store", actor: models.Actor{ID: storeID, Role: models.RoleStore}},
		{name: "admin", actor: models.Actor{ID: uuid.New(), Role: models.RoleAdmin}},
		{name: "other store", actor: models.Actor{ID: uuid.New(), Role: models.RoleStore}, wantCode: ErrCodeUnauthorized},
		{name: "member", actor: models.Actor{ID: storeID, Role: models.RoleMember}, wantCode: ErrCodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProductRepo := mocks.NewMockProductRepository(t)
			service := NewProductService(nil, nil)
			ctx := context.Background()

			current := &models.Product{ID: uuid.New(), StoreID: storeID, Name: "Mug", Stock: 2, IsActive: true}
			mockProductRepo.On("FindByIDForUpdate", ctx, current.ID, false).Return(current, nil)
			if tt.wantCode == "" {
				updated := *current
				updated.Stock = stock
				mockProductRepo.On("Update", ctx, current.ID, update).Return(&updated, nil)
			}

			product, err := service.performUpdate(ctx, mockProductRepo, tt.actor, current.ID, update)

			if tt.wantCode != "" {
				var svcErr *ServiceError
				if assert.ErrorAs(t, err, &svcErr) {
					assert.Equal(t, tt.wantCode, svcErr.Code)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, stock, product.Stock)
		})
	}

	t.Run("unknown product", func(t *testing.T) {
		mockProductRepo := mocks.NewMockProductRepository(t)
		service := NewProductService(nil, nil)
		ctx := context.Background()

		productID := uuid.New()
		mockProductRepo.On("FindByIDForUpdate", ctx, productID, false).
			Return(nil, fmt.Errorf("product not found: %w", models.ErrNotFound))

		_, err := service.performUpdate(ctx, mockProductRepo, models.Actor{ID: storeID, Role: models.RoleStore}, productID, update)

		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeProductNotFound, svcErr.Code)
		}
	})
}

func TestProductService_PerformDeactivate(t *testing.T) {
	mockProductRepo := mocks.NewMockProductRepository(t)
	service := NewProductService(nil, nil)
	ctx := context.Background()

	storeID := uuid.New()
	current := &models.Product{ID: uuid.New(), StoreID: storeID, IsActive: true}
	mockProductRepo.On("FindByIDForUpdate", ctx, current.ID, false).Return(current, nil)
	mockProductRepo.On("Deactivate", ctx, current.ID).Return(&models.Product{ID: current.ID, StoreID: storeID}, nil)

	err := service.performDeactivate(ctx, mockProductRepo, models.Actor{ID: storeID, Role: models.RoleStore}, current.ID)

	assert.NoError(t, err)
}

func TestProductService_UpdateValidation(t *testing.T) {
	service := NewProductService(nil, nil)
	negative := int64(-3)

	_, err := service.UpdateProduct(context.Background(), models.Actor{ID: uuid.New(), Role: models.RoleAdmin}, uuid.New(),
		models.ProductUpdate{RequiredPoints: &negative})

	var svcErr *ServiceError
	if assert.ErrorAs(t, err, &svcErr) {
		assert.Equal(t, ErrCodeValidation, svcErr.Code)
	}
}

func TestProductService_GetProduct(t *testing.T) {
	t.Run("active product", func(t *testing.T) {
		mockProductRepo := mocks.NewMockProductRepository(t)
		service := NewProductService(nil, nil)
		ctx := context.Background()

		product := &models.Product{ID: uuid.New(), IsActive: true}
		mockProductRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		got, err := service.getProduct(ctx, mockProductRepo, product.ID)

		require.NoError(t, err)
		assert.Equal(t, product.ID, got.ID)
	})

	t.Run("inactive product is hidden", func(t *testing.T) {
		mockProductRepo := mocks.NewMockProductRepository(t)
		service := NewProductService(nil, nil)
		ctx := context.Background()

		product := &models.Product{ID: uuid.New(), IsActive: false}
		mockProductRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.getProduct(ctx, mockProductRepo, product.ID)

		var svcErr *ServiceError
		if assert.ErrorAs(t, err, &svcErr) {
			assert.Equal(t, ErrCodeProductNotFound, svcErr.Code)
		}
	})
}
