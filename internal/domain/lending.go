package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanOffer is a fixed-term lending product.
type LoanOffer struct {
	ID        string          `json:"id"`
	Symbol    string          `json:"symbol"`
	Apr       decimal.Decimal `json:"apr"`
	TermDays  int             `json:"term_days"`
	MinAmount decimal.Decimal `json:"min_amount"`
}

type LoanIntentStatus string

const (
	LoanIntentStatusPending  LoanIntentStatus = "PENDING"
	LoanIntentStatusApproved LoanIntentStatus = "APPROVED"
)

// LoanIntent records a borrower's interest in an offer.
type LoanIntent struct {
	ID        string           `json:"id"`
	OfferID   string           `json:"offer_id"`
	Amount    decimal.Decimal  `json:"amount"`
	Status    LoanIntentStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}
