package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"custody-service/internal/xerrors"
)

type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

type OrderStatus string

const (
	OrderStatusFilled   OrderStatus = "FILLED"
	OrderStatusReview   OrderStatus = "REVIEW"
	OrderStatusRejected OrderStatus = "REJECTED"
	OrderStatusFailed   OrderStatus = "FAILED"
)

// Order is a single-shot trade execution. Exactly one Order exists per
// distinct idempotency key; a replayed key returns the original row with no
// new side effects.
type Order struct {
	ID             string          `json:"id"`
	IdempotencyKey string          `json:"idempotency_key"`
	Symbol         string          `json:"symbol"`
	Side           OrderSide       `json:"side"`
	Qty            decimal.Decimal `json:"qty"`
	Price          decimal.Decimal `json:"price"`
	Status         OrderStatus     `json:"status"`
	RiskScore      int             `json:"risk_score"`
	AccountID      string          `json:"account_id"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (o *Order) Clone() *Order {
	cp := *o
	return &cp
}

// PlaceOrderRequest carries the caller-supplied fields for order placement.
type PlaceOrderRequest struct {
	Symbol         string          `json:"symbol"`
	Side           OrderSide       `json:"side"`
	Qty            decimal.Decimal `json:"qty"`
	AccountID      string          `json:"account_id"`
	IdempotencyKey string          `json:"idempotency_key"`
}

func (r *PlaceOrderRequest) Validate() error {
	if r.Symbol == "" {
		return xerrors.ErrInvalidSymbol
	}
	if r.Side != OrderSideBuy && r.Side != OrderSideSell {
		return xerrors.ErrInvalidSide
	}
	if !r.Qty.IsPositive() {
		return xerrors.ErrInvalidAmount
	}
	if r.AccountID == "" {
		return xerrors.ErrInvalidAccount
	}
	if r.IdempotencyKey == "" {
		return xerrors.ErrIdempotencyKeyRequired
	}
	return nil
}
