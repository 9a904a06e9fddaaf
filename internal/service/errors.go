package service

import (
	"errors"
	"fmt"

	"github.com/benx421/points-exchange/internal/models"
)

// ServiceError represents a business logic error with a code. Details carries
// the numbers behind a balance or stock failure.
type ServiceError struct {
	Err     error
	Details map[string]int64
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeValidation          = "validation_error"
	ErrCodeWalletLocked        = "wallet_locked"
	ErrCodeInsufficientBalance = "insufficient_balance"
	ErrCodeInsufficientStock   = "insufficient_stock"
	ErrCodeProductUnavailable  = "product_unavailable"
	ErrCodeAlreadyVerified     = "already_verified"
	ErrCodeNotFound            = "not_found"
	ErrCodeAccountNotFound     = "account_not_found"
	ErrCodeProductNotFound     = "product_not_found"
	ErrCodeVoucherNotFound     = "voucher_not_found"
	ErrCodeTransactionNotFound = "transaction_not_found"
	ErrCodeUnauthorized        = "unauthorized"
	ErrCodeConflict            = "conflict"
	ErrCodeTransientFailure    = "transient_failure"
	ErrCodeInternalError       = "internal_error"
)

func validationError(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeValidation, Message: message}
}

func unauthorizedError(message string) *ServiceError {
	return &ServiceError{Code: ErrCodeUnauthorized, Message: message}
}

func internalError(message string, err error) *ServiceError {
	return &ServiceError{Code: ErrCodeInternalError, Message: message, Err: err}
}

// lookupError maps a repository lookup failure to notFoundCode when the entity
// is missing and to an internal error otherwise
func lookupError(err error, notFoundCode, message string) *ServiceError {
	if errors.Is(err, models.ErrNotFound) {
		return &ServiceError{Code: notFoundCode, Message: message}
	}
	return internalError("failed to load "+entityOf(notFoundCode), err)
}

func entityOf(notFoundCode string) string {
	switch notFoundCode {
	case ErrCodeAccountNotFound:
		return "account"
	case ErrCodeProductNotFound, ErrCodeProductUnavailable:
		return "product"
	case ErrCodeVoucherNotFound:
		return "voucher"
	case ErrCodeTransactionNotFound:
		return "transaction"
	}
	return "record"
}

// CodeOf returns the code of a ServiceError in err's chain, or internal_error
func CodeOf(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return ErrCodeInternalError
}
