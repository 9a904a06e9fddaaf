package models

import (
	"time"

	"github.com/google/uuid"
)

// VoucherStatus is the redemption state of an exchange voucher
type VoucherStatus string

const (
	VoucherStatusPending  VoucherStatus = "PENDING"
	VoucherStatusVerified VoucherStatus = "VERIFIED"
)

// Valid reports whether s is a known voucher status
func (s VoucherStatus) Valid() bool {
	return s == VoucherStatusPending || s == VoucherStatusVerified
}

// Voucher proves a successful points-for-product exchange. Status only moves
// from PENDING to VERIFIED.
type Voucher struct {
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updated_at"`
	VerifiedAt  *time.Time    `db:"verified_at" json:"verified_at,omitempty"`
	VerifiedBy  *uuid.UUID    `db:"verified_by" json:"verified_by,omitempty"`
	Code        string        `db:"code" json:"code"`
	Status      VoucherStatus `db:"status" json:"status"`
	Quantity    int           `db:"quantity" json:"quantity"`
	PointsSpent int64         `db:"points_spent" json:"points_spent"`
	ID          uuid.UUID     `db:"id" json:"id"`
	OwnerID     uuid.UUID     `db:"owner_id" json:"owner_id"`
	ProductID   uuid.UUID     `db:"product_id" json:"product_id"`
}

// VoucherDetail is a voucher together with the product fields needed to
// authorize and render it
type VoucherDetail struct {
	Voucher
	ProductName string    `json:"product_name"`
	StoreID     uuid.UUID `json:"store_id"`
}
