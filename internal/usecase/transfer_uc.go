package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"custody-service/internal/domain"
	"custody-service/internal/metrics"
	"custody-service/internal/policy"
	"custody-service/internal/repository"
	"custody-service/internal/xerrors"
	"custody-service/pkg/utils"
)

// TransferUsecase drives the custodial transfer state machine:
//
//	DRAFT -> PENDING_APPROVAL -> APPROVED
//	      \-> REJECTED (allowlist failure or explicit rejection)
//
// All mutations are serialized behind a single mutex so a quorum check and
// the ledger debit that follows it are atomic with respect to concurrent
// approver sessions.
type TransferUsecase struct {
	transfers repository.TransferRepository
	vaults    repository.VaultRepository
	balances  repository.BalanceRepository
	idgen     *utils.IDGenerator
	logger    *zap.Logger

	mu sync.Mutex
}

func NewTransferUsecase(
	transfers repository.TransferRepository,
	vaults repository.VaultRepository,
	balances repository.BalanceRepository,
	idgen *utils.IDGenerator,
	logger *zap.Logger,
) *TransferUsecase {
	return &TransferUsecase{
		transfers: transfers,
		vaults:    vaults,
		balances:  balances,
		idgen:     idgen,
		logger:    logger,
	}
}

// CreateDraft builds a DRAFT transfer. The approval quorum is frozen from
// the source vault's policy here and never re-evaluated, even if the vault
// policy changes later.
func (uc *TransferUsecase) CreateDraft(ctx context.Context, req *domain.CreateTransferRequest) (*domain.Transfer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	vault, err := uc.vaults.GetByID(ctx, req.FromVault)
	if err != nil {
		return nil, err
	}

	t := &domain.Transfer{
		ID:                uc.idgen.NewID("tr"),
		CreatedAt:         time.Now(),
		FromVault:         vault.ID,
		ToAddress:         req.ToAddress,
		Asset:             req.Asset,
		Amount:            req.Amount,
		Network:           req.Network,
		Priority:          req.Priority,
		Memo:              req.Memo,
		FeeLabel:          feeLabelFor(req.Network, req.Priority),
		EtaLabel:          etaLabelFor(req.Priority),
		ApprovalsRequired: policy.ApprovalsRequiredForVault(vault),
		Approvals:         []domain.ApprovalVote{},
		Status:            domain.TransferStatusDraft,
	}

	if err := uc.transfers.Insert(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create transfer draft: %w", err)
	}

	metrics.TransferTransitions.WithLabelValues(string(domain.TransferStatusDraft)).Inc()
	uc.logger.Info("transfer draft created",
		zap.String("transfer_id", t.ID),
		zap.String("from_vault", t.FromVault),
		zap.String("asset", t.Asset),
		zap.Int("approvals_required", t.ApprovalsRequired))
	return t.Clone(), nil
}

// Submit moves a DRAFT to PENDING_APPROVAL, or straight to REJECTED when
// the destination fails the allowlist. Submitting a non-DRAFT transfer is
// an idempotent no-op returning the current state.
func (uc *TransferUsecase) Submit(ctx context.Context, id string) (*domain.Transfer, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	t, err := uc.transfers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if t.Status != domain.TransferStatusDraft {
		return t, nil
	}

	uc.promoteDraft(t)
	if err := uc.transfers.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Approve records one approver's vote. Terminal transfers and duplicate
// approvers are no-ops. An unsubmitted DRAFT is promoted through the same
// allowlist gate as Submit before the vote lands (lenient by design: a
// signer acting on a draft implies submission). When the vote reaches
// quorum the transfer flips to APPROVED and the source vault balance is
// debited in the same critical section; an uncovered debit aborts the vote
// and surfaces ErrInsufficientBalance.
func (uc *TransferUsecase) Approve(ctx context.Context, id, approverID string) (*domain.Transfer, error) {
	if approverID == "" {
		return nil, xerrors.ErrApproverRequired
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	t, err := uc.transfers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if t.IsTerminal() {
		return t, nil
	}

	if t.Status == domain.TransferStatusDraft {
		uc.promoteDraft(t)
		if t.Status == domain.TransferStatusRejected {
			if err := uc.transfers.Update(ctx, t); err != nil {
				return nil, err
			}
			return t, nil
		}
	}

	if t.HasApprover(approverID) {
		return t, nil
	}

	t.Approvals = append(t.Approvals, domain.ApprovalVote{By: approverID, At: time.Now()})

	if len(t.Approvals) >= t.ApprovalsRequired {
		// Debit before persisting the vote: failure leaves the stored
		// transfer untouched and still PENDING_APPROVAL.
		if err := uc.balances.Debit(ctx, t.FromVault, t.Asset, t.Amount); err != nil {
			uc.logger.Warn("quorum debit failed",
				zap.String("transfer_id", t.ID),
				zap.String("asset", t.Asset),
				zap.Error(err))
			return nil, fmt.Errorf("debit %s from %s: %w", t.Asset, t.FromVault, err)
		}
		t.Status = domain.TransferStatusApproved
		metrics.TransferTransitions.WithLabelValues(string(domain.TransferStatusApproved)).Inc()
		metrics.LedgerDebits.Inc()
	}

	if err := uc.transfers.Update(ctx, t); err != nil {
		return nil, err
	}

	uc.logger.Info("transfer approval recorded",
		zap.String("transfer_id", t.ID),
		zap.String("approver", approverID),
		zap.Int("approvals", len(t.Approvals)),
		zap.String("status", string(t.Status)))
	return t, nil
}

// Reject forces any non-APPROVED transfer to REJECTED, regardless of how
// many votes it has collected. APPROVED transfers are terminal and the
// call is a no-op.
func (uc *TransferUsecase) Reject(ctx context.Context, id, approverID string, reason *string) (*domain.Transfer, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	t, err := uc.transfers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if t.Status == domain.TransferStatusApproved {
		return t, nil
	}
	if t.Status == domain.TransferStatusRejected {
		return t, nil
	}

	t.Status = domain.TransferStatusRejected
	t.Rejection = &domain.RejectionRecord{By: approverID, At: time.Now(), Reason: reason}
	if err := uc.transfers.Update(ctx, t); err != nil {
		return nil, err
	}

	metrics.TransferTransitions.WithLabelValues(string(domain.TransferStatusRejected)).Inc()
	uc.logger.Info("transfer rejected",
		zap.String("transfer_id", t.ID),
		zap.String("rejected_by", approverID))
	return t, nil
}

func (uc *TransferUsecase) List(ctx context.Context) ([]*domain.Transfer, error) {
	return uc.transfers.List(ctx)
}

func (uc *TransferUsecase) ListBalances(ctx context.Context) ([]*domain.Balance, error) {
	return uc.balances.List(ctx)
}

func (uc *TransferUsecase) ListVaults(ctx context.Context) ([]*domain.Vault, error) {
	return uc.vaults.List(ctx)
}

// promoteDraft applies the submission policy gate in place: allowlisted
// destinations advance to PENDING_APPROVAL, everything else is REJECTED
// terminally. Policy outcomes are states, not errors.
func (uc *TransferUsecase) promoteDraft(t *domain.Transfer) {
	if !policy.IsAllowlistedAddress(t.ToAddress) {
		t.Status = domain.TransferStatusRejected
		metrics.TransferTransitions.WithLabelValues(string(domain.TransferStatusRejected)).Inc()
		uc.logger.Info("transfer rejected by allowlist",
			zap.String("transfer_id", t.ID))
		return
	}
	t.Status = domain.TransferStatusPendingApproval
	metrics.TransferTransitions.WithLabelValues(string(domain.TransferStatusPendingApproval)).Inc()
}

func feeLabelFor(network string, priority domain.TransferPriority) string {
	if strings.ToUpper(network) == "BTC" {
		if priority == domain.TransferPriorityFast {
			return "~0.00025 BTC"
		}
		return "~0.00015 BTC"
	}
	if priority == domain.TransferPriorityFast {
		return "~0.003 ETH"
	}
	return "~0.002 ETH"
}

func etaLabelFor(priority domain.TransferPriority) string {
	if priority == domain.TransferPriorityFast {
		return "≈ 5–10 min"
	}
	return "≈ 15–30 min"
}
