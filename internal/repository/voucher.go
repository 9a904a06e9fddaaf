package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/benx421/points-exchange/internal/db"
	"github.com/benx421/points-exchange/internal/models"
	"github.com/google/uuid"
)

// VoucherRepository defines the interface for exchange voucher data access
type VoucherRepository interface {
	Create(ctx context.Context, voucher *models.Voucher) error
	CodeExists(ctx context.Context, code string) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.VoucherDetail, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.VoucherDetail, error)
	FindByCode(ctx context.Context, code string) (*models.VoucherDetail, error)
	MarkVerified(ctx context.Context, id, verifiedBy uuid.UUID, verifiedAt time.Time) error
	List(ctx context.Context, filter models.VoucherFilter, page models.Page) ([]*models.VoucherDetail, int, error)
	CountByStatus(ctx context.Context, status models.VoucherStatus) (int64, error)
}

type voucherRepository struct {
	db db.DBTX
}

// NewVoucherRepository creates a new VoucherRepository
func NewVoucherRepository(database db.DBTX) VoucherRepository {
	return &voucherRepository{db: database}
}

const voucherDetailSelect = `
	SELECT v.id, v.owner_id, v.product_id, v.code, v.quantity, v.points_spent, v.status,
	       v.verified_by, v.verified_at, v.created_at, v.updated_at,
	       p.name, p.store_id
	FROM vouchers v
	JOIN products p ON p.id = v.product_id`

func scanVoucherDetail(row rowScanner) (*models.VoucherDetail, error) {
	var (
		detail     models.VoucherDetail
		verifiedBy uuid.NullUUID
		verifiedAt sql.NullTime
	)
	err := row.Scan(
		&detail.ID,
		&detail.OwnerID,
		&detail.ProductID,
		&detail.Code,
		&detail.Quantity,
		&detail.PointsSpent,
		&detail.Status,
		&verifiedBy,
		&verifiedAt,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.ProductName,
		&detail.StoreID,
	)
	if err != nil {
		return nil, err
	}

	if verifiedBy.Valid {
		detail.VerifiedBy = &verifiedBy.UUID
	}
	if verifiedAt.Valid {
		detail.VerifiedAt = &verifiedAt.Time
	}
	return &detail, nil
}

// Create inserts a voucher. A code clash surfaces as models.ErrDuplicateCode.
func (r *voucherRepository) Create(ctx context.Context, voucher *models.Voucher) error {
	query := `
		INSERT INTO vouchers (id, owner_id, product_id, code, quantity, points_spent, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		voucher.ID,
		voucher.OwnerID,
		voucher.ProductID,
		voucher.Code,
		voucher.Quantity,
		voucher.PointsSpent,
		voucher.Status,
	).Scan(&voucher.CreatedAt, &voucher.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("voucher code %s: %w", voucher.Code, models.ErrDuplicateCode)
		}
		return fmt.Errorf("failed to create voucher: %w", err)
	}

	return nil
}

// CodeExists reports whether a voucher already uses code
func (r *voucherRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM vouchers WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check voucher code: %w", err)
	}
	return exists, nil
}

// FindByID retrieves a voucher with its product fields
func (r *voucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.VoucherDetail, error) {
	return r.findOne(ctx, voucherDetailSelect+` WHERE v.id = $1`, id)
}

// FindByIDForUpdate retrieves a voucher and locks its row, leaving the
// product row unlocked
func (r *voucherRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.VoucherDetail, error) {
	return r.findOne(ctx, voucherDetailSelect+` WHERE v.id = $1 FOR UPDATE OF v`, id)
}

// FindByCode retrieves a voucher by its exchange code
func (r *voucherRepository) FindByCode(ctx context.Context, code string) (*models.VoucherDetail, error) {
	return r.findOne(ctx, voucherDetailSelect+` WHERE v.code = $1`, code)
}

func (r *voucherRepository) findOne(ctx context.Context, query string, arg any) (*models.VoucherDetail, error) {
	detail, err := scanVoucherDetail(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("voucher not found: %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find voucher: %w", err)
	}
	return detail, nil
}

// MarkVerified moves a PENDING voucher to VERIFIED. A voucher that is not
// pending is left untouched and reported as not found.
func (r *voucherRepository) MarkVerified(ctx context.Context, id, verifiedBy uuid.UUID, verifiedAt time.Time) error {
	query := `
		UPDATE vouchers
		SET status = $2,
		    verified_by = $3,
		    verified_at = $4,
		    updated_at = NOW()
		WHERE id = $1 AND status = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		id,
		models.VoucherStatusVerified,
		verifiedBy,
		verifiedAt,
		models.VoucherStatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to verify voucher: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("pending voucher not found: %w", models.ErrNotFound)
	}

	return nil
}

// List returns vouchers matching filter, newest first, with the total count
func (r *voucherRepository) List(ctx context.Context, filter models.VoucherFilter, page models.Page) ([]*models.VoucherDetail, int, error) {
	var where whereClause
	if filter.OwnerID != nil {
		where.add("v.owner_id = $%d", *filter.OwnerID)
	}
	if filter.StoreID != nil {
		where.add("p.store_id = $%d", *filter.StoreID)
	}
	if filter.ProductID != nil {
		where.add("v.product_id = $%d", *filter.ProductID)
	}
	if filter.Status != nil {
		where.add("v.status = $%d", *filter.Status)
	}

	countQuery := `SELECT COUNT(*) FROM vouchers v JOIN products p ON p.id = v.product_id` + where.String()
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count vouchers: %w", err)
	}

	limit, args := where.paginate(page)
	query := voucherDetailSelect + where.String() + ` ORDER BY v.created_at DESC, v.id` + limit

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vouchers: %w", err)
	}
	defer rows.Close()

	vouchers := make([]*models.VoucherDetail, 0)
	for rows.Next() {
		detail, err := scanVoucherDetail(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan voucher: %w", err)
		}
		vouchers = append(vouchers, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate vouchers: %w", err)
	}

	return vouchers, total, nil
}

// CountByStatus counts vouchers in the given status
func (r *voucherRepository) CountByStatus(ctx context.Context, status models.VoucherStatus) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vouchers WHERE status = $1`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count vouchers: %w", err)
	}
	return count, nil
}
