package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/benx421/points-exchange/internal/db"
	"github.com/benx421/points-exchange/internal/models"
	"github.com/benx421/points-exchange/internal/repository"
	"github.com/google/uuid"
)

// NewProduct holds the fields a store supplies when listing a product
type NewProduct struct {
	Name           string
	Memo           string
	RequiredPoints int64
	Stock          int64
}

// ProductService manages the store catalog
type ProductService struct {
	db     *db.DB
	runner *Runner
}

// NewProductService creates a new ProductService
func NewProductService(database *db.DB, runner *Runner) *ProductService {
	return &ProductService{
		db:     database,
		runner: runner,
	}
}

// CreateProduct lists a new active product owned by the acting store
func (s *ProductService) CreateProduct(ctx context.Context, actor models.Actor, input NewProduct) (*models.Product, error) {
	return s.createProduct(ctx, repository.NewProductRepository(s.db), actor, input)
}

func (s *ProductService) createProduct(ctx context.Context, productRepo repository.ProductRepository, actor models.Actor, input NewProduct) (*models.Product, error) {
	if actor.Role != models.RoleStore {
		return nil, unauthorizedError("only stores can list products")
	}

	name := strings.TrimSpace(input.Name)
	update := models.ProductUpdate{
		Name:           &name,
		Memo:           &input.Memo,
		RequiredPoints: &input.RequiredPoints,
		Stock:          &input.Stock,
	}
	if err := ValidateProductUpdate(update); err != nil {
		return nil, validationError(err.Error())
	}

	product := &models.Product{
		ID:             uuid.New(),
		StoreID:        actor.ID,
		Name:           name,
		Memo:           input.Memo,
		RequiredPoints: input.RequiredPoints,
		Stock:          input.Stock,
		IsActive:       true,
	}
	if err := productRepo.Create(ctx, product); err != nil {
		return nil, internalError("failed to create product", err)
	}

	return product, nil
}

// UpdateProduct applies a partial change. Only the owning store or an admin
// may change a product.
func (s *ProductService) UpdateProduct(ctx context.Context, actor models.Actor, productID uuid.UUID, update models.ProductUpdate) (product *models.Product, err error) {
	defer func() { recordOutcome(OperationUpdateProduct, err) }()

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		update.Name = &name
	}
	if err := ValidateProductUpdate(update); err != nil {
		return nil, validationError(err.Error())
	}

	err = s.runner.Run(ctx, OperationUpdateProduct, func(tx *sql.Tx) error {
		var txErr error
		product, txErr = s.performUpdate(ctx, repository.NewProductRepository(tx), actor, productID, update)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// DeactivateProduct soft-deletes a product. Issued vouchers remain valid.
func (s *ProductService) DeactivateProduct(ctx context.Context, actor models.Actor, productID uuid.UUID) (err error) {
	defer func() { recordOutcome(OperationDeactivateProduct, err) }()

	return s.runner.Run(ctx, OperationDeactivateProduct, func(tx *sql.Tx) error {
		return s.performDeactivate(ctx, repository.NewProductRepository(tx), actor, productID)
	})
}

func (s *ProductService) performUpdate(
	ctx context.Context,
	productRepo repository.ProductRepository,
	actor models.Actor,
	productID uuid.UUID,
	update models.ProductUpdate,
) (*models.Product, error) {
	if _, err := lockOwnedProduct(ctx, productRepo, actor, productID); err != nil {
		return nil, err
	}

	product, err := productRepo.Update(ctx, productID, update)
	if err != nil {
		return nil, lookupError(err, ErrCodeProductNotFound, "product not found")
	}

	return product, nil
}

func (s *ProductService) performDeactivate(ctx context.Context, productRepo repository.ProductRepository, actor models.Actor, productID uuid.UUID) error {
	if _, err := lockOwnedProduct(ctx, productRepo, actor, productID); err != nil {
		return err
	}

	if _, err := productRepo.Deactivate(ctx, productID); err != nil {
		return lookupError(err, ErrCodeProductNotFound, "product not found")
	}

	return nil
}

// lockOwnedProduct locks the product row, so a change cannot interleave with
// an in-flight exchange, and checks the actor owns it or is an admin
func lockOwnedProduct(ctx context.Context, productRepo repository.ProductRepository, actor models.Actor, productID uuid.UUID) (*models.Product, error) {
	product, err := productRepo.FindByIDForUpdate(ctx, productID, false)
	if err != nil {
		return nil, lookupError(err, ErrCodeProductNotFound, "product not found")
	}

	if !actor.IsAdmin() && (actor.Role != models.RoleStore || product.StoreID != actor.ID) {
		return nil, unauthorizedError("not allowed to modify this product")
	}

	return product, nil
}

// GetProduct returns an active catalog product
func (s *ProductService) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	return s.getProduct(ctx, repository.NewProductRepository(s.db), productID)
}

func (s *ProductService) getProduct(ctx context.Context, productRepo repository.ProductRepository, productID uuid.UUID) (*models.Product, error) {
	product, err := productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, lookupError(err, ErrCodeProductNotFound, "product not found")
	}

	if !product.IsActive {
		return nil, &ServiceError{Code: ErrCodeProductNotFound, Message: "product not found"}
	}

	return product, nil
}

// ListProducts returns catalog products, newest first
func (s *ProductService) ListProducts(ctx context.Context, filter models.ProductFilter, page models.Page) ([]*models.Product, int, error) {
	products, total, err := repository.NewProductRepository(s.db).List(ctx, filter, page)
	if err != nil {
		return nil, 0, internalError("failed to list products", err)
	}

	return products, total, nil
}
