package models

import "errors"

// Domain errors that can be returned by repositories
var (
	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("not found")

	// ErrDuplicateCode indicates a voucher with the same code already exists
	ErrDuplicateCode = errors.New("duplicate voucher code")

	// ErrInsufficientStock indicates a stock decrement would go below zero
	ErrInsufficientStock = errors.New("insufficient stock")
)
