package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds the per-user cash balance available for investing.
// There is exactly one wallet per user; the balance is mutated only by
// deposits (+) and investments (−).
type Wallet struct {
	// UserID identifies the owning account (also the primary key).
	UserID int64 `json:"user_id"`

	// Balance is the current cash balance with 2-decimal money semantics.
	Balance decimal.Decimal `json:"balance"`

	// UpdatedAt is the timestamp of the last balance mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Wallet model.
func (w Wallet) TableName() string {
	return "user_wallets"
}
