package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a store-listed item that members can exchange points for
type Product struct {
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
	Name           string    `db:"name" json:"name"`
	Memo           string    `db:"memo" json:"memo"`
	RequiredPoints int64     `db:"required_points" json:"required_points"`
	Stock          int64     `db:"stock" json:"stock"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	ID             uuid.UUID `db:"id" json:"id"`
	StoreID        uuid.UUID `db:"store_id" json:"store_id"`
}

// ProductUpdate carries a partial product change. Nil fields are left untouched.
type ProductUpdate struct {
	Name           *string
	Memo           *string
	RequiredPoints *int64
	Stock          *int64
	IsActive       *bool
}
