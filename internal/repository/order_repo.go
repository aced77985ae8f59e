package repository

import (
	"context"
	"sync"

	"custody-service/internal/domain"
	"custody-service/internal/xerrors"
)

type OrderRepository interface {
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)

	// CreateIfAbsent inserts the order unless one already exists for its
	// idempotency key; the lookup and the insert happen under one lock so
	// concurrent duplicate submissions cannot both create a row. Returns
	// the persisted order and whether this call created it.
	CreateIfAbsent(ctx context.Context, order *domain.Order) (*domain.Order, bool, error)

	// List returns orders most-recent-first.
	List(ctx context.Context) ([]*domain.Order, error)
}

type orderRepo struct {
	mu    sync.RWMutex
	byKey map[string]*domain.Order
	// newest first
	history []*domain.Order
}

func NewOrderRepo() OrderRepository {
	return &orderRepo{
		byKey: make(map[string]*domain.Order),
	}
}

func (r *orderRepo) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byKey[key]
	if !ok {
		return nil, xerrors.ErrOrderNotFound
	}
	return o.Clone(), nil
}

func (r *orderRepo) CreateIfAbsent(ctx context.Context, order *domain.Order) (*domain.Order, bool, error) {
	if order.IdempotencyKey == "" {
		return nil, false, xerrors.ErrIdempotencyKeyRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byKey[order.IdempotencyKey]; ok {
		return existing.Clone(), false, nil
	}

	stored := order.Clone()
	r.byKey[stored.IdempotencyKey] = stored
	r.history = append([]*domain.Order{stored}, r.history...)
	return stored.Clone(), true, nil
}

func (r *orderRepo) List(ctx context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Order, 0, len(r.history))
	for _, o := range r.history {
		out = append(out, o.Clone())
	}
	return out, nil
}
