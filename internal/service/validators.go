package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/benx421/points-exchange/internal/models"
)

// Exchange and catalog limits
const (
	MinExchangeQuantity = 1
	MaxExchangeQuantity = 5
	MaxMemoLength       = 300
	MaxProductNameLen   = 200
)

// ValidateAmount checks if a deposit amount is valid (positive)
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("invalid amount: must be greater than 0")
	}

	return nil
}

// ValidateQuantity checks an exchange quantity is within the per-exchange limit
func ValidateQuantity(quantity int) error {
	if quantity < MinExchangeQuantity || quantity > MaxExchangeQuantity {
		return fmt.Errorf("invalid quantity: must be between %d and %d", MinExchangeQuantity, MaxExchangeQuantity)
	}

	return nil
}

// ValidateMemo checks the memo length in characters
func ValidateMemo(memo string) error {
	if utf8.RuneCountInString(memo) > MaxMemoLength {
		return fmt.Errorf("invalid memo: must be at most %d characters", MaxMemoLength)
	}

	return nil
}

// ValidateProductName checks a product name is present and not too long
func ValidateProductName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("invalid name: must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > MaxProductNameLen {
		return fmt.Errorf("invalid name: must be at most %d characters", MaxProductNameLen)
	}

	return nil
}

// ValidateProductUpdate checks every field present in a partial update
func ValidateProductUpdate(update models.ProductUpdate) error {
	if update.Name != nil {
		if err := ValidateProductName(*update.Name); err != nil {
			return err
		}
	}
	if update.Memo != nil {
		if err := ValidateMemo(*update.Memo); err != nil {
			return err
		}
	}
	if update.RequiredPoints != nil && *update.RequiredPoints < 0 {
		return fmt.Errorf("invalid required_points: must not be negative")
	}
	if update.Stock != nil && *update.Stock < 0 {
		return fmt.Errorf("invalid stock: must not be negative")
	}

	return nil
}
