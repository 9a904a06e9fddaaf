package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/benx421/points-exchange/internal/db"
	"github.com/benx421/points-exchange/internal/models"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product and stock data access
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID, activeOnly bool) (*models.Product, error)
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int64) error
	Update(ctx context.Context, id uuid.UUID, update models.ProductUpdate) (*models.Product, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, filter models.ProductFilter, page models.Page) ([]*models.Product, int, error)
}

type productRepository struct {
	db db.DBTX
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(database db.DBTX) ProductRepository {
	return &productRepository{db: database}
}

const productColumns = `id, store_id, name, memo, required_points, stock, is_active, created_at, updated_at`

func scanProduct(row rowScanner) (*models.Product, error) {
	var product models.Product
	err := row.Scan(
		&product.ID,
		&product.StoreID,
		&product.Name,
		&product.Memo,
		&product.RequiredPoints,
		&product.Stock,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create inserts a new product and fills in its timestamps
func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, store_id, name, memo, required_points, stock, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		product.ID,
		product.StoreID,
		product.Name,
		product.Memo,
		product.RequiredPoints,
		product.Stock,
		product.IsActive,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// FindByID retrieves a product regardless of its active flag
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product by id: %w", err)
	}
	return product, nil
}

// FindByIDForUpdate retrieves a product under an exclusive row lock. With
// activeOnly, soft-deleted products are reported as not found.
func (r *productRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID, activeOnly bool) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` FOR UPDATE`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock product: %w", err)
	}
	return product, nil
}

// DecrementStock removes quantity units from stock. It never lets stock go
// below zero.
func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int64) error {
	query := `
		UPDATE products
		SET stock = stock - $2,
		    updated_at = NOW()
		WHERE id = $1 AND stock >= $2
	`

	result, err := r.db.ExecContext(ctx, query, id, quantity)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, models.ErrInsufficientStock)
	}

	return nil
}

// Update applies the non-nil fields of update and returns the stored product
func (r *productRepository) Update(ctx context.Context, id uuid.UUID, update models.ProductUpdate) (*models.Product, error) {
	query := `
		UPDATE products
		SET name = COALESCE($2, name),
		    memo = COALESCE($3, memo),
		    required_points = COALESCE($4, required_points),
		    stock = COALESCE($5, stock),
		    is_active = COALESCE($6, is_active),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	product, err := scanProduct(r.db.QueryRowContext(ctx, query,
		id,
		update.Name,
		update.Memo,
		update.RequiredPoints,
		update.Stock,
		update.IsActive,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// Deactivate soft-deletes a product. The row is kept so vouchers still
// resolve their product.
func (r *productRepository) Deactivate(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	inactive := false
	return r.Update(ctx, id, models.ProductUpdate{IsActive: &inactive})
}

// List returns products matching filter, newest first, with the total count
func (r *productRepository) List(ctx context.Context, filter models.ProductFilter, page models.Page) ([]*models.Product, int, error) {
	var where whereClause
	if filter.StoreID != nil {
		where.add("store_id = $%d", *filter.StoreID)
	}
	if !filter.IncludeInactive {
		where.addRaw("is_active = TRUE")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	limit, args := where.paginate(page)
	query := `SELECT ` + productColumns + ` FROM products` + where.String() + ` ORDER BY created_at DESC, id` + limit

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]*models.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, total, nil
}
