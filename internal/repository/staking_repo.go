package repository

import (
	"context"
	"sync"

	"custody-service/internal/domain"
	"custody-service/internal/xerrors"
)

type StakingRepository interface {
	GetBySymbol(ctx context.Context, symbol string) (*domain.StakingPosition, error)

	// Upsert stores the position; new positions are prepended.
	Upsert(ctx context.Context, pos *domain.StakingPosition) error

	List(ctx context.Context) ([]*domain.StakingPosition, error)
}

type stakingRepo struct {
	mu        sync.RWMutex
	positions []*domain.StakingPosition
}

func NewStakingRepo() StakingRepository {
	return &stakingRepo{}
}

func (r *stakingRepo) GetBySymbol(ctx context.Context, symbol string) (*domain.StakingPosition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.positions {
		if p.Symbol == symbol {
			return p.Clone(), nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *stakingRepo) Upsert(ctx context.Context, pos *domain.StakingPosition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.positions {
		if p.Symbol == pos.Symbol {
			r.positions[i] = pos.Clone()
			return nil
		}
	}
	r.positions = append([]*domain.StakingPosition{pos.Clone()}, r.positions...)
	return nil
}

func (r *stakingRepo) List(ctx context.Context) ([]*domain.StakingPosition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.StakingPosition, 0, len(r.positions))
	for _, p := range r.positions {
		out = append(out, p.Clone())
	}
	return out, nil
}
