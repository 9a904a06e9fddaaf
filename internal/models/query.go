package models

import "github.com/google/uuid"

const (
	DefaultPageSize = 10
	MaxPageSize     = 1000
	MaxPageNumber   = 1_000_000
)

// Page selects a window of a listing. A zero Number means no pagination.
type Page struct {
	Number int
	Size   int
}

// Limit returns the row limit for the page
func (p Page) Limit() int {
	if p.Number == 0 {
		return MaxPageSize
	}
	if p.Size <= 0 {
		return DefaultPageSize
	}
	if p.Size > MaxPageSize {
		return MaxPageSize
	}
	return p.Size
}

// Offset returns the row offset for the page
func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (min(p.Number, MaxPageNumber) - 1) * p.Limit()
}

// TransactionFilter narrows a ledger listing
type TransactionFilter struct {
	OwnerID   *uuid.UUID
	Type      *TransactionType
	IsSuccess *bool
}

// VoucherFilter narrows a voucher listing
type VoucherFilter struct {
	OwnerID   *uuid.UUID
	StoreID   *uuid.UUID
	ProductID *uuid.UUID
	Status    *VoucherStatus
}

// ProductFilter narrows a catalog listing
type ProductFilter struct {
	StoreID         *uuid.UUID
	IncludeInactive bool
}
