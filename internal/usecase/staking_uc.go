package usecase

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"custody-service/internal/domain"
	"custody-service/internal/repository"
	"custody-service/internal/xerrors"
)

var defaultStakingApr = decimal.RequireFromString("3.2")

// StakingUsecase manages account-wide staking positions, one per symbol.
type StakingUsecase struct {
	positions repository.StakingRepository
	logger    *zap.Logger

	mu sync.Mutex
}

func NewStakingUsecase(positions repository.StakingRepository, logger *zap.Logger) *StakingUsecase {
	return &StakingUsecase{
		positions: positions,
		logger:    logger,
	}
}

// Stake tops up an existing position or opens a new one at the default APR.
func (uc *StakingUsecase) Stake(ctx context.Context, symbol string, amount decimal.Decimal) (*domain.StakingPosition, error) {
	if symbol == "" {
		return nil, xerrors.ErrInvalidSymbol
	}
	if !amount.IsPositive() {
		return nil, xerrors.ErrInvalidAmount
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	pos, err := uc.positions.GetBySymbol(ctx, symbol)
	if err != nil {
		pos = &domain.StakingPosition{
			Symbol:       symbol,
			StakedAmount: amount,
			RewardsYtd:   decimal.Zero,
			Apr:          defaultStakingApr,
		}
	} else {
		pos.StakedAmount = pos.StakedAmount.Add(amount)
	}

	if err := uc.positions.Upsert(ctx, pos); err != nil {
		return nil, err
	}

	uc.logger.Info("stake settled",
		zap.String("symbol", symbol),
		zap.String("staked_amount", pos.StakedAmount.String()))
	return pos, nil
}

func (uc *StakingUsecase) List(ctx context.Context) ([]*domain.StakingPosition, error) {
	return uc.positions.List(ctx)
}
