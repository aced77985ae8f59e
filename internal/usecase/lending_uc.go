package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"custody-service/internal/domain"
	"custody-service/internal/repository"
	"custody-service/internal/xerrors"
	"custody-service/pkg/utils"
)

// LendingUsecase serves the loan offer book and records borrow intents.
type LendingUsecase struct {
	repo   repository.LendingRepository
	idgen  *utils.IDGenerator
	logger *zap.Logger
}

func NewLendingUsecase(repo repository.LendingRepository, idgen *utils.IDGenerator, logger *zap.Logger) *LendingUsecase {
	return &LendingUsecase{
		repo:   repo,
		idgen:  idgen,
		logger: logger,
	}
}

func (uc *LendingUsecase) ListOffers(ctx context.Context) ([]*domain.LoanOffer, error) {
	return uc.repo.ListOffers(ctx)
}

// CreateLoanIntent validates the offer and its minimum, then records a
// PENDING intent.
func (uc *LendingUsecase) CreateLoanIntent(ctx context.Context, offerID string, amount decimal.Decimal) (*domain.LoanIntent, error) {
	if !amount.IsPositive() {
		return nil, xerrors.ErrInvalidAmount
	}

	offer, err := uc.repo.GetOfferByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if amount.LessThan(offer.MinAmount) {
		return nil, xerrors.ErrAmountBelowMinimum
	}

	intent := &domain.LoanIntent{
		ID:        uc.idgen.NewID("loan_intent"),
		OfferID:   offer.ID,
		Amount:    amount,
		Status:    domain.LoanIntentStatusPending,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.InsertIntent(ctx, intent); err != nil {
		return nil, err
	}

	uc.logger.Info("loan intent created",
		zap.String("intent_id", intent.ID),
		zap.String("offer_id", offer.ID))
	return intent, nil
}
