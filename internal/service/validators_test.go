package service

import (
	"strings"
	"testing"

	"github.com/benx421/points-exchange/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		wantErr bool
	}{
		{name: "valid amount", amount: 100, wantErr: false},
		{name: "minimum valid amount", amount: 1, wantErr: false},
		{name: "zero amount", amount: 0, wantErr: true},
		{name: "negative amount", amount: -100, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		wantErr  bool
	}{
		{name: "minimum", quantity: 1},
		{name: "maximum", quantity: 5},
		{name: "zero", quantity: 0, wantErr: true},
		{name: "above limit", quantity: 6, wantErr: true},
		{name: "negative", quantity: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuantity(tt.quantity)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMemo(t *testing.T) {
	assert.NoError(t, ValidateMemo(""))
	assert.NoError(t, ValidateMemo(strings.Repeat("點", MaxMemoLength)), "length counts characters, not bytes")
	assert.Error(t, ValidateMemo(strings.Repeat("a", MaxMemoLength+1)))
}

func TestValidateProductName(t *testing.T) {
	assert.NoError(t, ValidateProductName("Coffee"))
	assert.Error(t, ValidateProductName("   "))
	assert.Error(t, ValidateProductName(strings.Repeat("n", MaxProductNameLen+1)))
}

func TestValidateProductUpdate(t *testing.T) {
	negative := int64(-1)
	empty := ""
	zero := int64(0)

	assert.NoError(t, ValidateProductUpdate(models.ProductUpdate{}))
	assert.NoError(t, ValidateProductUpdate(models.ProductUpdate{RequiredPoints: &zero, Stock: &zero}))
	assert.Error(t, ValidateProductUpdate(models.ProductUpdate{Stock: &negative}))
	assert.Error(t, ValidateProductUpdate(models.ProductUpdate{RequiredPoints: &negative}))
	assert.Error(t, ValidateProductUpdate(models.ProductUpdate{Name: &empty}))
}
