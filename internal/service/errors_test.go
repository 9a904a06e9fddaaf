package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/benx421/points-exchange/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestServiceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ServiceError
		expected string
	}{
		{
			name: "error without underlying cause",
			err: &ServiceError{
				Code:    "test_error",
				Message: "test message",
			},
			expected: "test message",
		},
		{
			name: "error with underlying cause",
			err: &ServiceError{
				Code:    "test_error",
				Message: "test message",
				Err:     errors.New("underlying error"),
			},
			expected: "test message: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestServiceError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &ServiceError{
		Code:    "test_error",
		Message: "test message",
		Err:     underlying,
	}

	assert.Equal(t, underlying, err.Unwrap())
	assert.True(t, errors.Is(err, underlying))
}

func TestLookupError(t *testing.T) {
	t.Run("missing entity", func(t *testing.T) {
		err := lookupError(fmt.Errorf("voucher not found: %w", models.ErrNotFound), ErrCodeVoucherNotFound, "voucher not found")

		assert.Equal(t, ErrCodeVoucherNotFound, err.Code)
		assert.Nil(t, err.Err)
	})

	t.Run("storage failure", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := lookupError(cause, ErrCodeAccountNotFound, "account not found")

		assert.Equal(t, ErrCodeInternalError, err.Code)
		assert.Equal(t, "failed to load account", err.Message)
		assert.ErrorIs(t, err, cause)
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeWalletLocked, CodeOf(fmt.Errorf("wrapped: %w", &ServiceError{Code: ErrCodeWalletLocked})))
	assert.Equal(t, ErrCodeInternalError, CodeOf(errors.New("plain")))
}
