package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"custody-service/internal/domain"
	"custody-service/internal/repository"
	"custody-service/internal/risk"
	"custody-service/internal/xerrors"
	"custody-service/pkg/utils"
)

// ApprovalQueueUsecase maintains the signer-facing work queue. It is a
// staging view deliberately decoupled from the transfer store: votes here
// do not write through to transfers, and queue history is ephemeral.
type ApprovalQueueUsecase struct {
	queue  repository.ApprovalQueueRepository
	market *MarketUsecase
	idgen  *utils.IDGenerator
	logger *zap.Logger

	mu sync.Mutex
}

func NewApprovalQueueUsecase(
	queue repository.ApprovalQueueRepository,
	market *MarketUsecase,
	idgen *utils.IDGenerator,
	logger *zap.Logger,
) *ApprovalQueueUsecase {
	return &ApprovalQueueUsecase{
		queue:  queue,
		market: market,
		idgen:  idgen,
		logger: logger,
	}
}

// EnqueueTransfer stages a transfer-shaped item. Single-approver items
// start PENDING; anything needing a quorum starts IN_REVIEW. The risk
// score reuses the order formula with the asset's reference mid as the
// price leg, so the two call sites cannot diverge.
func (uc *ApprovalQueueUsecase) EnqueueTransfer(ctx context.Context, req *domain.EnqueueTransferRequest) (*domain.ApprovalQueueItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	status := domain.QueueStatusPending
	if req.ApprovalsRequired > 1 {
		status = domain.QueueStatusInReview
	}

	item := &domain.ApprovalQueueItem{
		ID:                uc.idgen.NewID("tr"),
		Type:              domain.ApprovalItemTypeTransfer,
		CreatedAt:         time.Now(),
		Status:            status,
		FromVault:         req.FromVault,
		ToAddress:         req.ToAddress,
		Asset:             req.Asset,
		Amount:            req.Amount,
		Network:           req.Network,
		Priority:          req.Priority,
		Memo:              req.Memo,
		FeeLabel:          req.FeeLabel,
		EtaLabel:          req.EtaLabel,
		RiskScore:         risk.ScoreOrder(req.Asset, req.Amount, uc.market.MidPrice(req.Asset)),
		ApprovalsRequired: req.ApprovalsRequired,
		Approvals:         []domain.ApprovalVote{},
	}

	if err := uc.queue.Insert(ctx, item); err != nil {
		return nil, err
	}

	uc.logger.Info("transfer staged for approval",
		zap.String("item_id", item.ID),
		zap.String("status", string(item.Status)),
		zap.Int("risk_score", item.RiskScore))
	return item, nil
}

// EnqueueOrderReview stages a free-text order review item.
func (uc *ApprovalQueueUsecase) EnqueueOrderReview(ctx context.Context, summary string) (*domain.ApprovalQueueItem, error) {
	if summary == "" {
		return nil, xerrors.ErrInvalidInput
	}

	item := &domain.ApprovalQueueItem{
		ID:        uc.idgen.NewID("rev"),
		Type:      domain.ApprovalItemTypeOrderReview,
		CreatedAt: time.Now(),
		Status:    domain.QueueStatusInReview,
		Summary:   summary,
	}
	if err := uc.queue.Insert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Approve records a vote on a queue item. Terminal items and duplicate
// approvers are no-ops. Order reviews approve on a single vote; transfer
// items approve at quorum and otherwise stay IN_REVIEW.
func (uc *ApprovalQueueUsecase) Approve(ctx context.Context, id, approver string) (*domain.ApprovalQueueItem, error) {
	if approver == "" {
		return nil, xerrors.ErrApproverRequired
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	item, err := uc.queue.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.IsTerminal() {
		return item, nil
	}

	if item.Type == domain.ApprovalItemTypeOrderReview {
		item.Status = domain.QueueStatusApproved
		if err := uc.queue.Update(ctx, item); err != nil {
			return nil, err
		}
		return item, nil
	}

	if item.HasApprover(approver) {
		return item, nil
	}

	item.Approvals = append(item.Approvals, domain.ApprovalVote{By: approver, At: time.Now()})
	if len(item.Approvals) >= item.ApprovalsRequired {
		item.Status = domain.QueueStatusApproved
	} else {
		item.Status = domain.QueueStatusInReview
	}

	if err := uc.queue.Update(ctx, item); err != nil {
		return nil, err
	}

	uc.logger.Info("queue item vote recorded",
		zap.String("item_id", item.ID),
		zap.String("approver", approver),
		zap.String("status", string(item.Status)))
	return item, nil
}

// Reject forces a non-APPROVED item to REJECTED and records who and why.
func (uc *ApprovalQueueUsecase) Reject(ctx context.Context, id, approver string, reason *string) (*domain.ApprovalQueueItem, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	item, err := uc.queue.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.Status == domain.QueueStatusApproved {
		return item, nil
	}

	item.Status = domain.QueueStatusRejected
	if item.Type == domain.ApprovalItemTypeTransfer {
		item.Rejection = &domain.RejectionRecord{By: approver, At: time.Now(), Reason: reason}
	}
	if err := uc.queue.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *ApprovalQueueUsecase) List(ctx context.Context) ([]*domain.ApprovalQueueItem, error) {
	return uc.queue.List(ctx)
}

// ClearCompleted drops terminal items. No audit trail survives this.
func (uc *ApprovalQueueUsecase) ClearCompleted(ctx context.Context) (int, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.queue.RemoveCompleted(ctx)
}

func (uc *ApprovalQueueUsecase) ClearAll(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.queue.Clear(ctx)
}
