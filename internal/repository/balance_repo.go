package repository

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"custody-service/internal/domain"
	"custody-service/internal/xerrors"
)

type BalanceRepository interface {
	Get(ctx context.Context, accountID, symbol string) (*domain.Balance, error)
	List(ctx context.Context) ([]*domain.Balance, error)

	// Credit adds to a balance, creating the row if absent.
	Credit(ctx context.Context, accountID, symbol string, amount decimal.Decimal) error

	// Debit subtracts from a balance. Fails with ErrInsufficientBalance when
	// the holding cannot cover the amount; a balance is never driven below
	// zero. Only the transfer quorum transition and settlement paths may
	// call this.
	Debit(ctx context.Context, accountID, symbol string, amount decimal.Decimal) error
}

type balanceKey struct {
	accountID string
	symbol    string
}

type balanceRepo struct {
	mu     sync.RWMutex
	rows   map[balanceKey]*domain.Balance
	sorted []balanceKey
}

func NewBalanceRepo() BalanceRepository {
	return &balanceRepo{
		rows: make(map[balanceKey]*domain.Balance),
	}
}

func (r *balanceRepo) Get(ctx context.Context, accountID, symbol string) (*domain.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.rows[balanceKey{accountID, symbol}]
	if !ok {
		return nil, xerrors.ErrBalanceNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *balanceRepo) List(ctx context.Context) ([]*domain.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Balance, 0, len(r.sorted))
	for _, k := range r.sorted {
		cp := *r.rows[k]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *balanceRepo) Credit(ctx context.Context, accountID, symbol string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return xerrors.ErrInvalidAmount
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k := balanceKey{accountID, symbol}
	b, ok := r.rows[k]
	if !ok {
		r.rows[k] = &domain.Balance{
			AccountID: accountID,
			Symbol:    symbol,
			Amount:    amount,
			UpdatedAt: time.Now(),
		}
		r.sorted = append(r.sorted, k)
		return nil
	}

	b.Amount = b.Amount.Add(amount)
	b.UpdatedAt = time.Now()
	return nil
}

func (r *balanceRepo) Debit(ctx context.Context, accountID, symbol string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return xerrors.ErrInvalidAmount
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.rows[balanceKey{accountID, symbol}]
	if !ok {
		return xerrors.ErrBalanceNotFound
	}
	if b.Amount.LessThan(amount) {
		return xerrors.ErrInsufficientBalance
	}

	b.Amount = b.Amount.Sub(amount)
	b.UpdatedAt = time.Now()
	return nil
}
