package xerrors

import "errors"

// Generic
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInternalServer = errors.New("internal server error")
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input provided")
)

// Input validation
var (
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidSymbol          = errors.New("symbol is required")
	ErrInvalidSide            = errors.New("side must be BUY or SELL")
	ErrInvalidAccount         = errors.New("account id is required")
	ErrInvalidAddress         = errors.New("destination address is required")
	ErrIdempotencyKeyRequired = errors.New("idempotency key is required")
	ErrApproverRequired       = errors.New("approver id is required")
)

// Lookup
var (
	ErrVaultNotFound    = errors.New("vault not found")
	ErrTransferNotFound = errors.New("transfer not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrBalanceNotFound  = errors.New("balance not found")
	ErrItemNotFound     = errors.New("approval item not found")
	ErrOfferNotFound    = errors.New("loan offer not found")
)

// Ledger
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Market data
var (
	ErrQuoteUnavailable = errors.New("quote unavailable")
)

// Lending
var (
	ErrAmountBelowMinimum = errors.New("amount below offer minimum")
)
