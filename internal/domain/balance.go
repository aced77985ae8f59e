package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance represents the current holding of one asset in one account.
// Unique per (AccountID, Symbol). Never negative.
type Balance struct {
	AccountID string          `json:"account_id"`
	Symbol    string          `json:"symbol"`
	Amount    decimal.Decimal `json:"amount"`
	UpdatedAt time.Time       `json:"updated_at"`
}
