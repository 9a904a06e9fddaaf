package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/benx421/points-exchange/internal/db"
	"github.com/benx421/points-exchange/internal/models"
	"github.com/benx421/points-exchange/internal/repository"
	"github.com/benx421/points-exchange/internal/voucher"
	"github.com/google/uuid"
)

// ProductSummary identifies the product a voucher was issued for
type ProductSummary struct {
	ID      uuid.UUID
	Name    string
	StoreID uuid.UUID
}

// VoucherView is a voucher with its product summary
type VoucherView struct {
	Voucher models.Voucher
	Product ProductSummary
}

func newVoucherView(detail *models.VoucherDetail) *VoucherView {
	return &VoucherView{
		Voucher: detail.Voucher,
		Product: ProductSummary{
			ID:      detail.ProductID,
			Name:    detail.ProductName,
			StoreID: detail.StoreID,
		},
	}
}

// VoucherService verifies and reads exchange vouchers
type VoucherService struct {
	db     *db.DB
	runner *Runner
	now    func() time.Time
}

// NewVoucherService creates a new VoucherService
func NewVoucherService(database *db.DB, runner *Runner) *VoucherService {
	return &VoucherService{
		db:     database,
		runner: runner,
		now:    time.Now,
	}
}

// VerifyVoucher marks a pending voucher as redeemed by actor
func (s *VoucherService) VerifyVoucher(ctx context.Context, voucherID uuid.UUID, actor models.Actor) (view *VoucherView, err error) {
	defer func() { recordOutcome(OperationVerifyVoucher, err) }()

	err = s.runner.Run(ctx, OperationVerifyVoucher, func(tx *sql.Tx) error {
		var txErr error
		view, txErr = s.performVerify(ctx, repository.NewVoucherRepository(tx), voucherID, actor)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// performVerify contains the voucher redemption state machine
func (s *VoucherService) performVerify(
	ctx context.Context,
	voucherRepo repository.VoucherRepository,
	voucherID uuid.UUID,
	actor models.Actor,
) (*VoucherView, error) {
	detail, err := voucherRepo.FindByIDForUpdate(ctx, voucherID)
	if err != nil {
		return nil, lookupError(err, ErrCodeVoucherNotFound, "voucher not found")
	}

	if !canRedeem(actor, detail) {
		return nil, unauthorizedError("not allowed to verify this voucher")
	}

	if detail.Status == models.VoucherStatusVerified {
		return nil, &ServiceError{
			Code:    ErrCodeAlreadyVerified,
			Message: "voucher has already been verified",
		}
	}

	now := s.now().UTC()
	if err := voucherRepo.MarkVerified(ctx, detail.ID, actor.ID, now); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, &ServiceError{
				Code:    ErrCodeAlreadyVerified,
				Message: "voucher has already been verified",
			}
		}
		return nil, internalError("failed to verify voucher", err)
	}

	verifiedBy := actor.ID
	detail.Status = models.VoucherStatusVerified
	detail.VerifiedBy = &verifiedBy
	detail.VerifiedAt = &now
	detail.UpdatedAt = now

	return newVoucherView(detail), nil
}

// LookupVoucherByCode finds a voucher by its code, ignoring case
func (s *VoucherService) LookupVoucherByCode(ctx context.Context, code string, actor models.Actor) (*VoucherView, error) {
	code = voucher.Normalize(code)
	if code == "" {
		return nil, validationError("code is required")
	}

	return s.lookup(ctx, repository.NewVoucherRepository(s.db), code, actor)
}

func (s *VoucherService) lookup(ctx context.Context, voucherRepo repository.VoucherRepository, code string, actor models.Actor) (*VoucherView, error) {
	detail, err := voucherRepo.FindByCode(ctx, code)
	return scopedView(actor, detail, err)
}

// GetVoucher retrieves a voucher the actor may see
func (s *VoucherService) GetVoucher(ctx context.Context, voucherID uuid.UUID, actor models.Actor) (*VoucherView, error) {
	return s.get(ctx, repository.NewVoucherRepository(s.db), voucherID, actor)
}

func (s *VoucherService) get(ctx context.Context, voucherRepo repository.VoucherRepository, voucherID uuid.UUID, actor models.Actor) (*VoucherView, error) {
	detail, err := voucherRepo.FindByID(ctx, voucherID)
	return scopedView(actor, detail, err)
}

func scopedView(actor models.Actor, detail *models.VoucherDetail, err error) (*VoucherView, error) {
	if err != nil {
		return nil, lookupError(err, ErrCodeVoucherNotFound, "voucher not found")
	}

	if !canView(actor, detail) {
		return nil, unauthorizedError("not allowed to view this voucher")
	}

	return newVoucherView(detail), nil
}

// ListVouchers returns the vouchers visible to actor. Members see their own,
// stores see those for their products and admins see all.
func (s *VoucherService) ListVouchers(ctx context.Context, actor models.Actor, filter models.VoucherFilter, page models.Page) ([]*VoucherView, int, error) {
	return s.listVouchers(ctx, repository.NewVoucherRepository(s.db), actor, filter, page)
}

func (s *VoucherService) listVouchers(
	ctx context.Context,
	voucherRepo repository.VoucherRepository,
	actor models.Actor,
	filter models.VoucherFilter,
	page models.Page,
) ([]*VoucherView, int, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, validationError("invalid status")
	}

	actorID := actor.ID
	switch actor.Role {
	case models.RoleMember:
		filter.OwnerID = &actorID
		filter.StoreID = nil
	case models.RoleStore:
		filter.StoreID = &actorID
		filter.OwnerID = nil
	case models.RoleAdmin:
	default:
		return nil, 0, unauthorizedError("unknown role")
	}

	details, total, err := voucherRepo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, internalError("failed to list vouchers", err)
	}

	views := make([]*VoucherView, 0, len(details))
	for _, detail := range details {
		views = append(views, newVoucherView(detail))
	}
	return views, total, nil
}

// canRedeem reports whether actor may verify the voucher
func canRedeem(actor models.Actor, detail *models.VoucherDetail) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleStore:
		return detail.StoreID == actor.ID
	}
	return false
}

// canView reports whether actor may read the voucher
func canView(actor models.Actor, detail *models.VoucherDetail) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleStore:
		return detail.StoreID == actor.ID
	case models.RoleMember:
		return detail.OwnerID == actor.ID
	}
	return false
}
