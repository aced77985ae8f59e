package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"custody-service/internal/repository"
	"custody-service/internal/xerrors"
)

func newStakingFixture(t *testing.T) *StakingUsecase {
	t.Helper()
	return NewStakingUsecase(repository.NewStakingRepo(), zap.NewNop())
}

func TestStakeOpensPositionAtDefaultApr(t *testing.T) {
	uc := newStakingFixture(t)

	pos, err := uc.Stake(context.Background(), "ETH", d("10"))
	require.NoError(t, err)

	assert.True(t, pos.StakedAmount.Equal(d("10")))
	assert.True(t, pos.Apr.Equal(d("3.2")))
	assert.True(t, pos.RewardsYtd.IsZero())
}

func TestStakeTopsUpExistingPosition(t *testing.T) {
	uc := newStakingFixture(t)
	ctx := context.Background()

	_, err := uc.Stake(ctx, "ETH", d("120"))
	require.NoError(t, err)
	pos, err := uc.Stake(ctx, "ETH", d("5"))
	require.NoError(t, err)

	assert.True(t, pos.StakedAmount.Equal(d("125")))

	positions, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, positions, 1)
}

func TestStakeValidation(t *testing.T) {
	uc := newStakingFixture(t)
	ctx := context.Background()

	_, err := uc.Stake(ctx, "", d("10"))
	assert.ErrorIs(t, err, xerrors.ErrInvalidSymbol)

	_, err = uc.Stake(ctx, "ETH", d("0"))
	assert.ErrorIs(t, err, xerrors.ErrInvalidAmount)

	_, err = uc.Stake(ctx, "ETH", d("-3"))
	assert.ErrorIs(t, err, xerrors.ErrInvalidAmount)
}
