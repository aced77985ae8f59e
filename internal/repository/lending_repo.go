package repository

import (
	"context"
	"sync"

	"custody-service/internal/domain"
	"custody-service/internal/xerrors"
)

type LendingRepository interface {
	GetOfferByID(ctx context.Context, id string) (*domain.LoanOffer, error)
	ListOffers(ctx context.Context) ([]*domain.LoanOffer, error)
	SaveOffer(ctx context.Context, offer *domain.LoanOffer) error

	InsertIntent(ctx context.Context, intent *domain.LoanIntent) error
	ListIntents(ctx context.Context) ([]*domain.LoanIntent, error)
}

type lendingRepo struct {
	mu      sync.RWMutex
	offers  []*domain.LoanOffer
	intents []*domain.LoanIntent
}

func NewLendingRepo() LendingRepository {
	return &lendingRepo{}
}

func (r *lendingRepo) GetOfferByID(ctx context.Context, id string) (*domain.LoanOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.offers {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, xerrors.ErrOfferNotFound
}

func (r *lendingRepo) ListOffers(ctx context.Context) ([]*domain.LoanOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.LoanOffer, 0, len(r.offers))
	for _, o := range r.offers {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *lendingRepo) SaveOffer(ctx context.Context, offer *domain.LoanOffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.offers {
		if o.ID == offer.ID {
			cp := *offer
			r.offers[i] = &cp
			return nil
		}
	}
	cp := *offer
	r.offers = append(r.offers, &cp)
	return nil
}

func (r *lendingRepo) InsertIntent(ctx context.Context, intent *domain.LoanIntent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *intent
	r.intents = append([]*domain.LoanIntent{&cp}, r.intents...)
	return nil
}

func (r *lendingRepo) ListIntents(ctx context.Context) ([]*domain.LoanIntent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.LoanIntent, 0, len(r.intents))
	for _, i := range r.intents {
		cp := *i
		out = append(out, &cp)
	}
	return out, nil
}
