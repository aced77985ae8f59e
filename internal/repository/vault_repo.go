package repository

import (
	"context"
	"sync"

	"custody-service/internal/domain"
	"custody-service/internal/xerrors"
)

type VaultRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Vault, error)
	List(ctx context.Context) ([]*domain.Vault, error)
	Save(ctx context.Context, vault *domain.Vault) error
}

type vaultRepo struct {
	mu     sync.RWMutex
	byID   map[string]*domain.Vault
	sorted []string // insertion order for stable listings
}

func NewVaultRepo() VaultRepository {
	return &vaultRepo{
		byID: make(map[string]*domain.Vault),
	}
}

func (r *vaultRepo) GetByID(ctx context.Context, id string) (*domain.Vault, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrVaultNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *vaultRepo) List(ctx context.Context) ([]*domain.Vault, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Vault, 0, len(r.sorted))
	for _, id := range r.sorted {
		cp := *r.byID[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *vaultRepo) Save(ctx context.Context, vault *domain.Vault) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[vault.ID]; !exists {
		r.sorted = append(r.sorted, vault.ID)
	}
	cp := *vault
	r.byID[vault.ID] = &cp
	return nil
}
