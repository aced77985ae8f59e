package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"custody-service/internal/domain"
	"custody-service/internal/repository"
	"custody-service/internal/xerrors"
	"custody-service/pkg/utils"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type transferFixture struct {
	uc       *TransferUsecase
	balances repository.BalanceRepository
}

func newTransferFixture(t *testing.T) *transferFixture {
	t.Helper()
	ctx := context.Background()

	vaults := repository.NewVaultRepo()
	require.NoError(t, vaults.Save(ctx, &domain.Vault{
		ID: "vlt_1", Name: "Institutional Cold Vault",
		Tier: domain.VaultTierCold, ApprovalsRequired: 2,
	}))
	require.NoError(t, vaults.Save(ctx, &domain.Vault{
		ID: "vlt_2", Name: "Operations Hot Vault",
		Tier: domain.VaultTierHot, ApprovalsRequired: 1,
	}))

	balances := repository.NewBalanceRepo()
	require.NoError(t, balances.Credit(ctx, "vlt_1", "BTC", d("12.4")))
	require.NoError(t, balances.Credit(ctx, "vlt_2", "ETH", d("800")))

	uc := NewTransferUsecase(repository.NewTransferRepo(), vaults, balances,
		utils.NewIDGenerator(), zap.NewNop())
	return &transferFixture{uc: uc, balances: balances}
}

func coldDraftRequest() *domain.CreateTransferRequest {
	return &domain.CreateTransferRequest{
		FromVault: "vlt_1",
		ToAddress: "bc1qXXXXXXXX",
		Asset:     "BTC",
		Amount:    d("1.0"),
		Network:   "BTC",
		Priority:  domain.TransferPriorityStandard,
	}
}

func TestCreateDraftFreezesQuorumFromVaultPolicy(t *testing.T) {
	fx := newTransferFixture(t)
	ctx := context.Background()

	tr, err := fx.uc.CreateDraft(ctx, coldDraftRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.TransferStatusDraft, tr.Status)
	assert.Equal(t, 2, tr.ApprovalsRequired)
	assert.Empty(t, tr.Approvals)
	assert.Equal(t, "~0.00015 BTC", tr.FeeLabel)
	assert.Equal(t, "≈ 15–30 min", tr.EtaLabel)
}

func TestCreateDraftValidation(t *testing.T) {
	fx := newTransferFixture(t)
	ctx := context.Background()

	bad := coldDraftRequest()
	bad.Amount = d("0")
	_, err := fx.uc.CreateDraft(ctx, bad)
	assert.ErrorIs(t, err, xerrors.ErrInvalidAmount)

	unknown := coldDraftRequest()
	unknown.FromVault = "vlt_missing"
	_, err = fx.uc.CreateDraft(ctx, unknown)
	assert.ErrorIs(t, err, xerrors.ErrVaultNotFound)
}

func TestSubmitAllowlistedGoesPending(t *testing.T) {
	fx := newTransferFixture(t)
	ctx := context.Background()

	tr, err := fx.uc.CreateDraft(ctx, coldDraftRequest())
	require.NoError(t, err)

	tr, err = fx.uc.Submit(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransferStatusPendingApproval, tr.Status)

	// Submitting again is an idempotent no-op.
	again, err := fx.uc.Submit(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransferStatusPendingApproval, again.Status)
}

func TestSubmitNonAllowlistedRejectsTerminally(t *testing.T) {
	fx := newTransferFixture(t)
	ctx := context.Background()

	req := coldDraftRequest()
	req.ToAddress = "not-an-address"
	tr, err := fx.uc.CreateDraft(ctx, req)
	require.NoError(t, err)

	tr, err = fx.uc.Submit(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransferStatusRejected, tr.Status)

	// Rejection is terminal: approvals are no-ops afterwards.
	tr, err = fx.uc.Approve(ctx, tr.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.TransferStatusRejected, tr.Status)
	assert.Empty(t, tr.Approvals)
}

func TestApproveQuorumFlowDebitsExactlyOnce(t *testing.T) {
	fx := newTransferFixture(t)
	ctx := context.Background()

	tr, err := fx.uc.CreateDraft(ctx, coldDraftRequest())
	require.NoError(t, err)
	tr, err = fx.uc.Submit(ctx, tr.ID)
	require.NoError(t, err)

	// First approver: no quorum yet.
	tr, err = fx.uc.Approve(ctx, tr.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.TransferStatusPendingApproval, tr.Status)
	assert.Len(t, tr.Approvals, 1)

	// Same approver again: vote does not double count.
	tr, err = fx.uc.Approve(ctx, tr.ID, "alice")
	require.NoError(t, err)
	assert.Len(t, tr.Approvals, 1)

	// Distinct approver reaches quorum: APPROVED and debited.
	tr, err = fx.uc.Approve(ctx, tr.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.TransferStatusApproved, tr.Status)
	assert.Len(t, tr.Approvals, 2)

	bal, err := fx.balances.Get(ctx, "vlt_1", "BTC")
	require.NoError(t, err)
	assert.True(t, bal.Amount.Equal(d("11.4")), "got %s", bal.Amount)

	// Approving an APPROVED transfer is a no-op and must not debit again.
	tr, err = fx.uc.Approve(ctx, tr.ID, "carol")
	require.NoError(t, err)
	assert.Equal(t, domain.TransferStatusApproved, tr.Status)
	assert.Len(t, tr.Approvals, 2)

	bal, err = fx.balances.Get(ctx, "vlt_1", "BTC")
	require.NoError(t, err)
	assert.True(t, bal.Amount.Equal(d("11.4")), "got %s after replay", bal.Amount)
}

func TestApproveConcurrentSignersDebitOnce(t *testing.T) {
	fx := newTransferFixture(t)
	ctx := context.Background()

	tr, err := fx.uc.CreateDraft(ctx, coldDraftRequest())
	require.NoError(t, err)
	tr, err = fx.uc.Submit(ctx, tr.ID)
	require.NoError(t, err)

	// A crowd of distinct signers races to approve. The quorum check and
	// the debit sit in one critical section, so exactly two votes land,
	// the transfer flips APPROVED once, and the vault is debited once.
	const signers = 8
	var wg sync.WaitGroup
	wg.Add(signers)
	for i := 0; i < signers; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := fx.uc.Approve(ctx, tr.ID, fmt.Sprintf("signer-%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	transfers, err := fx.uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, domain.TransferStatusApproved, transfers[0].Status)
	assert.Len(t, transfers[0].Approvals, 2)

	bal, err := fx.balances.Get(ctx, "vlt_1", "BTC")
	require.NoError(t, err)
	assert.True(t, bal.Amount.Equal(d("11.4")), "got %s", bal.Amount)
}

func TestApproveLenientlyPromotesDraft(t *testing.T) {
	fx := newTransferFixture(t)
	ctx := context.Background()

	// Approving an unsubmitted draft submits it through the same
	// allowlist gate first.
	tr, err := fx.uc.CreateDraft(ctx, coldDraftRequest())
	require.NoError(t, err)

	tr, err = fx.uc.Approve(ctx, tr.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.TransferStatusPendingApproval, tr.Status)
	assert.Len(t, tr.Approvals, 1)
}

func TestApproveDraftWithBadAddressRejects(t *testing.T) {
	fx := newTransferFixture(t)
	ctx := context.Background()

	req := coldDraftRequest()
	req.ToAddress = "bc1q12" // below bech32 length boundary
	tr, err := fx.uc.CreateDraft(ctx, req)
	require.NoError(t, err)

	tr, err = fx.uc.Approve(ctx, tr.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.TransferStatusRejected, tr.Status)
	assert.Empty(t, tr.Approvals)
}

func TestApproveSingleApproverHotVault(t *testing.T) {
	fx := newTransferFixture(t)
	ctx := context.Background()

	req := &domain.CreateTransferRequest{
		FromVault: "vlt_2",
		ToAddress: "0xAbC123",
		Asset:     "ETH",
		Amount:    d("25"),
		Network:   "ETH",
		Priority:  domain.TransferPriorityFast,
	}
	tr, err := fx.uc.CreateDraft(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, tr.ApprovalsRequired)
	assert.Equal(t, "~0.003 ETH", tr.FeeLabel)

	tr, err = fx.uc.Submit(ctx, tr.ID)
	require.NoError(t, err)
	tr, err = fx.uc.Approve(ctx, tr.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.TransferStatusApproved, tr.Status)

	bal, err := fx.balances.Get(ctx, "vlt_2", "ETH")
	require.NoError(t, err)
	assert.True(t, bal.Amount.Equal(d("775")))
}

func TestApproveInsufficientBalanceAbortsVote(t *testing.T) {
	fx := newTransferFixture(t)
	ctx := context.Background()

	req := coldDraftRequest()
	req.Amount = d("999")
	tr, err := fx.uc.CreateDraft(ctx, req)
	require.NoError(t, err)
	tr, err = fx.uc.Submit(ctx, tr.ID)
	require.NoError(t, err)

	_, err = fx.uc.Approve(ctx, tr.ID, "alice")
	require.NoError(t, err)
	_, err = fx.uc.Approve(ctx, tr.ID, "bob")
	assert.ErrorIs(t, err, xerrors.ErrInsufficientBalance)

	// The failed quorum vote is not recorded and the balance is intact.
	transfers, err := fx.uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, domain.TransferStatusPendingApproval, transfers[0].Status)
	assert.Len(t, transfers[0].Approvals, 1)

	bal, err := fx.balances.Get(ctx, "vlt_1", "BTC")
	require.NoError(t, err)
	assert.True(t, bal.Amount.Equal(d("12.4")))
}

func TestRejectIsTerminalAndApprovedIsFinal(t *testing.T) {
	fx := newTransferFixture(t)
	ctx := context.Background()

	tr, err := fx.uc.CreateDraft(ctx, coldDraftRequest())
	require.NoError(t, err)
	tr, err = fx.uc.Submit(ctx, tr.ID)
	require.NoError(t, err)
	tr, err = fx.uc.Approve(ctx, tr.ID, "alice")
	require.NoError(t, err)

	reason := "suspicious destination"
	tr, err = fx.uc.Reject(ctx, tr.ID, "ops", &reason)
	require.NoError(t, err)
	assert.Equal(t, domain.TransferStatusRejected, tr.Status)
	require.NotNil(t, tr.Rejection)
	assert.Equal(t, "ops", tr.Rejection.By)

	// approve after reject: no-op
	tr, err = fx.uc.Approve(ctx, tr.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.TransferStatusRejected, tr.Status)
	assert.Len(t, tr.Approvals, 1)

	// And the inverse: an APPROVED transfer cannot be rejected.
	other, err := fx.uc.CreateDraft(ctx, coldDraftRequest())
	require.NoError(t, err)
	_, err = fx.uc.Submit(ctx, other.ID)
	require.NoError(t, err)
	_, err = fx.uc.Approve(ctx, other.ID, "alice")
	require.NoError(t, err)
	other, err = fx.uc.Approve(ctx, other.ID, "bob")
	require.NoError(t, err)
	require.Equal(t, domain.TransferStatusApproved, other.Status)

	other, err = fx.uc.Reject(ctx, other.ID, "ops", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.TransferStatusApproved, other.Status)
	assert.Nil(t, other.Rejection)
}

func TestTransferOperationsOnUnknownID(t *testing.T) {
	fx := newTransferFixture(t)
	ctx := context.Background()

	_, err := fx.uc.Submit(ctx, "tr_missing")
	assert.ErrorIs(t, err, xerrors.ErrTransferNotFound)
	_, err = fx.uc.Approve(ctx, "tr_missing", "alice")
	assert.ErrorIs(t, err, xerrors.ErrTransferNotFound)
	_, err = fx.uc.Reject(ctx, "tr_missing", "alice", nil)
	assert.ErrorIs(t, err, xerrors.ErrTransferNotFound)
}

func TestEndToEndColdVaultScenario(t *testing.T) {
	fx := newTransferFixture(t)
	ctx := context.Background()

	tr, err := fx.uc.CreateDraft(ctx, &domain.CreateTransferRequest{
		FromVault: "vlt_1",
		ToAddress: "bc1qXXXXXXXX",
		Asset:     "BTC",
		Amount:    d("1.0"),
		Network:   "BTC",
		Priority:  domain.TransferPriorityStandard,
	})
	require.NoError(t, err)
	require.Equal(t, domain.TransferStatusDraft, tr.Status)

	tr, err = fx.uc.Submit(ctx, tr.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TransferStatusPendingApproval, tr.Status)

	tr, err = fx.uc.Approve(ctx, tr.ID, "alice")
	require.NoError(t, err)
	require.Equal(t, domain.TransferStatusPendingApproval, tr.Status)
	require.Len(t, tr.Approvals, 1)

	tr, err = fx.uc.Approve(ctx, tr.ID, "bob")
	require.NoError(t, err)
	require.Equal(t, domain.TransferStatusApproved, tr.Status)
	require.Len(t, tr.Approvals, 2)

	bal, err := fx.balances.Get(ctx, "vlt_1", "BTC")
	require.NoError(t, err)
	require.True(t, bal.Amount.Equal(d("11.4")), "expected 11.4, got %s", bal.Amount)
}
