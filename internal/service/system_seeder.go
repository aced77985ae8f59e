package service

// custody-service/internal/service/system_seeder.go

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"custody-service/internal/domain"
	"custody-service/internal/repository"
)

// SystemSeeder loads the demo custody book: vaults, their balances, the
// staking position, and the loan offer book. Idempotent per process; the
// stores are empty at boot.
type SystemSeeder struct {
	vaults   repository.VaultRepository
	balances repository.BalanceRepository
	staking  repository.StakingRepository
	lending  repository.LendingRepository
	logger   *zap.Logger
}

func NewSystemSeeder(
	vaults repository.VaultRepository,
	balances repository.BalanceRepository,
	staking repository.StakingRepository,
	lending repository.LendingRepository,
	logger *zap.Logger,
) *SystemSeeder {
	return &SystemSeeder{
		vaults:   vaults,
		balances: balances,
		staking:  staking,
		lending:  lending,
		logger:   logger,
	}
}

func (s *SystemSeeder) SeedSystem(ctx context.Context) error {
	if err := s.seedVaults(ctx); err != nil {
		return err
	}
	if err := s.seedBalances(ctx); err != nil {
		return err
	}
	if err := s.seedStaking(ctx); err != nil {
		return err
	}
	if err := s.seedLending(ctx); err != nil {
		return err
	}

	s.logger.Info("system seeding completed")
	return nil
}

func (s *SystemSeeder) seedVaults(ctx context.Context) error {
	vaults := []*domain.Vault{
		{ID: "vlt_1", Name: "Institutional Cold Vault", Tier: domain.VaultTierCold, ApprovalsRequired: 2},
		{ID: "vlt_2", Name: "Operations Hot Vault", Tier: domain.VaultTierHot, ApprovalsRequired: 1},
	}
	for _, v := range vaults {
		if err := s.vaults.Save(ctx, v); err != nil {
			return fmt.Errorf("failed to seed vault %s: %w", v.ID, err)
		}
	}
	return nil
}

func (s *SystemSeeder) seedBalances(ctx context.Context) error {
	rows := []struct {
		accountID string
		symbol    string
		amount    string
	}{
		{"vlt_1", "BTC", "12.4"},
		{"vlt_1", "USDC", "2500000"},
		{"vlt_2", "ETH", "800"},
		{"vlt_2", "USDC", "350000"},
	}
	for _, row := range rows {
		amount := decimal.RequireFromString(row.amount)
		if err := s.balances.Credit(ctx, row.accountID, row.symbol, amount); err != nil {
			return fmt.Errorf("failed to seed balance %s/%s: %w", row.accountID, row.symbol, err)
		}
	}
	return nil
}

func (s *SystemSeeder) seedStaking(ctx context.Context) error {
	pos := &domain.StakingPosition{
		Symbol:       "ETH",
		StakedAmount: decimal.NewFromInt(120),
		RewardsYtd:   decimal.RequireFromString("3.2"),
		Apr:          decimal.RequireFromString("3.6"),
	}
	return s.staking.Upsert(ctx, pos)
}

func (s *SystemSeeder) seedLending(ctx context.Context) error {
	offers := []*domain.LoanOffer{
		{ID: "loan_1", Symbol: "USDC", Apr: decimal.RequireFromString("8.5"), TermDays: 30, MinAmount: decimal.NewFromInt(50_000)},
		{ID: "loan_2", Symbol: "USDC", Apr: decimal.RequireFromString("7.8"), TermDays: 90, MinAmount: decimal.NewFromInt(100_000)},
	}
	for _, o := range offers {
		if err := s.lending.SaveOffer(ctx, o); err != nil {
			return fmt.Errorf("failed to seed offer %s: %w", o.ID, err)
		}
	}
	return nil
}
