package repository

import (
	"context"
	"sync"

	"custody-service/internal/domain"
	"custody-service/internal/xerrors"
)

type TransferRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Transfer, error)

	// Insert prepends the transfer to the listing (most-recent-first).
	Insert(ctx context.Context, transfer *domain.Transfer) error

	// Update replaces the stored transfer with the given snapshot.
	Update(ctx context.Context, transfer *domain.Transfer) error

	List(ctx context.Context) ([]*domain.Transfer, error)
}

type transferRepo struct {
	mu   sync.RWMutex
	byID map[string]*domain.Transfer
	// newest first
	history []*domain.Transfer
}

func NewTransferRepo() TransferRepository {
	return &transferRepo{
		byID: make(map[string]*domain.Transfer),
	}
}

func (r *transferRepo) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrTransferNotFound
	}
	return t.Clone(), nil
}

func (r *transferRepo) Insert(ctx context.Context, transfer *domain.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[transfer.ID]; exists {
		return xerrors.ErrInvalidRequest
	}

	stored := transfer.Clone()
	r.byID[stored.ID] = stored
	r.history = append([]*domain.Transfer{stored}, r.history...)
	return nil
}

func (r *transferRepo) Update(ctx context.Context, transfer *domain.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[transfer.ID]
	if !ok {
		return xerrors.ErrTransferNotFound
	}

	next := transfer.Clone()
	*stored = *next
	return nil
}

func (r *transferRepo) List(ctx context.Context) ([]*domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Transfer, 0, len(r.history))
	for _, t := range r.history {
		out = append(out, t.Clone())
	}
	return out, nil
}
