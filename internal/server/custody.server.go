package server

import (
	"context"

	"go.uber.org/zap"

	"custody-service/internal/config"
	hrest "custody-service/internal/handler/rest"
	"custody-service/internal/repository"
	"custody-service/internal/service"
	"custody-service/internal/usecase"
	"custody-service/pkg/utils"
)

// NewCustodyRestServer wires the in-memory stores, seeds the demo book,
// and serves the REST surface. Blocks until the listener exits.
func NewCustodyRestServer(cfg config.AppConfig, logger *zap.Logger) error {
	handler, err := BuildHandler(cfg, logger)
	if err != nil {
		return err
	}
	return handler.Start(cfg.HTTPAddr)
}

// BuildHandler assembles repositories, usecases, and the REST handler.
// Split out of NewCustodyRestServer so tests can mount the router without
// binding a port.
func BuildHandler(cfg config.AppConfig, logger *zap.Logger) (*hrest.CustodyRestHandler, error) {
	idgen := utils.NewIDGenerator()

	// --- Repositories ---
	vaultRepo := repository.NewVaultRepo()
	balanceRepo := repository.NewBalanceRepo()
	orderRepo := repository.NewOrderRepo()
	transferRepo := repository.NewTransferRepo()
	queueRepo := repository.NewApprovalQueueRepo()
	stakingRepo := repository.NewStakingRepo()
	lendingRepo := repository.NewLendingRepo()

	// --- Seed demo book ---
	seeder := service.NewSystemSeeder(vaultRepo, balanceRepo, stakingRepo, lendingRepo, logger)
	if err := seeder.SeedSystem(context.Background()); err != nil {
		return nil, err
	}

	// --- Usecases ---
	marketUC := usecase.NewMarketUsecase(idgen, logger)
	orderUC := usecase.NewOrderUsecase(orderRepo, marketUC, idgen, cfg.QuoteTimeout, logger)
	transferUC := usecase.NewTransferUsecase(transferRepo, vaultRepo, balanceRepo, idgen, logger)
	approvalUC := usecase.NewApprovalQueueUsecase(queueRepo, marketUC, idgen, logger)
	stakingUC := usecase.NewStakingUsecase(stakingRepo, logger)
	lendingUC := usecase.NewLendingUsecase(lendingRepo, idgen, logger)

	return hrest.NewCustodyRestHandler(
		orderUC,
		transferUC,
		approvalUC,
		marketUC,
		stakingUC,
		lendingUC,
		logger,
	), nil
}
