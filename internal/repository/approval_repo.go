package repository

import (
	"context"
	"sync"

	"custody-service/internal/domain"
	"custody-service/internal/xerrors"
)

type ApprovalQueueRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ApprovalQueueItem, error)

	// Insert prepends the item (newest entries surface first in the queue).
	Insert(ctx context.Context, item *domain.ApprovalQueueItem) error

	Update(ctx context.Context, item *domain.ApprovalQueueItem) error

	List(ctx context.Context) ([]*domain.ApprovalQueueItem, error)

	// RemoveCompleted drops every APPROVED or REJECTED item. Queue history
	// is ephemeral; nothing is archived elsewhere.
	RemoveCompleted(ctx context.Context) (int, error)

	Clear(ctx context.Context) error
}

type approvalQueueRepo struct {
	mu    sync.RWMutex
	items []*domain.ApprovalQueueItem
}

func NewApprovalQueueRepo() ApprovalQueueRepository {
	return &approvalQueueRepo{}
}

func (r *approvalQueueRepo) GetByID(ctx context.Context, id string) (*domain.ApprovalQueueItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, it := range r.items {
		if it.ID == id {
			return it.Clone(), nil
		}
	}
	return nil, xerrors.ErrItemNotFound
}

func (r *approvalQueueRepo) Insert(ctx context.Context, item *domain.ApprovalQueueItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append([]*domain.ApprovalQueueItem{item.Clone()}, r.items...)
	return nil
}

func (r *approvalQueueRepo) Update(ctx context.Context, item *domain.ApprovalQueueItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == item.ID {
			r.items[i] = item.Clone()
			return nil
		}
	}
	return xerrors.ErrItemNotFound
}

func (r *approvalQueueRepo) List(ctx context.Context) ([]*domain.ApprovalQueueItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.ApprovalQueueItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it.Clone())
	}
	return out, nil
}

func (r *approvalQueueRepo) RemoveCompleted(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	removed := 0
	for _, it := range r.items {
		if it.IsTerminal() {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	r.items = kept
	return removed, nil
}

func (r *approvalQueueRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = nil
	return nil
}
