package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a user's points wallet. There is at most one per owner.
type Account struct {
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	Balance   int64     `db:"balance" json:"balance"`
	IsLocked  bool      `db:"is_locked" json:"is_locked"`
	ID        uuid.UUID `db:"id" json:"id"`
	OwnerID   uuid.UUID `db:"owner_id" json:"owner_id"`
}
