package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is a tradeable instrument in the catalogue.
type Asset struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Quote is a two-sided price snapshot for one symbol.
type Quote struct {
	Symbol string          `json:"symbol"`
	Bid    decimal.Decimal `json:"bid"`
	Ask    decimal.Decimal `json:"ask"`
	Ts     time.Time       `json:"ts"`
}

// RfqQuote is a single venue response to a request-for-quote fan-out.
type RfqQuote struct {
	ID        string          `json:"id"`
	Venue     string          `json:"venue"`
	Price     decimal.Decimal `json:"price"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// RfqRequest asks multiple venues to price a notional in the base asset.
type RfqRequest struct {
	Base     string          `json:"base"`
	Quote    string          `json:"quote"`
	Notional decimal.Decimal `json:"notional"`
}
