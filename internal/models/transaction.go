package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType represents the type of ledger entry
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeRedemption TransactionType = "REDEMPTION"
)

// Valid reports whether t is a known transaction type
func (t TransactionType) Valid() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeRedemption
}

// Transaction is an append-only ledger entry for a balance-affecting event.
// BalanceAfter is the account balance immediately after the entry applied.
type Transaction struct {
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	Memo         string          `db:"memo" json:"memo"`
	Type         TransactionType `db:"tx_type" json:"tx_type"`
	Amount       int64           `db:"amount" json:"amount"`
	BalanceAfter int64           `db:"balance_after" json:"balance_after"`
	IsSuccess    bool            `db:"is_success" json:"is_success"`
	ID           uuid.UUID       `db:"id" json:"id"`
	OwnerID      uuid.UUID       `db:"owner_id" json:"owner_id"`
}
