package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"custody-service/internal/xerrors"
)

type TransferStatus string

const (
	TransferStatusDraft           TransferStatus = "DRAFT"
	TransferStatusPendingApproval TransferStatus = "PENDING_APPROVAL"
	TransferStatusApproved        TransferStatus = "APPROVED"
	TransferStatusRejected        TransferStatus = "REJECTED"
)

type TransferPriority string

const (
	TransferPriorityStandard TransferPriority = "Standard"
	TransferPriorityFast     TransferPriority = "Fast"
)

// ApprovalVote is one distinct approver's recorded vote.
type ApprovalVote struct {
	By string    `json:"by"`
	At time.Time `json:"at"`
}

// RejectionRecord captures who rejected and why.
type RejectionRecord struct {
	By     string    `json:"by"`
	At     time.Time `json:"at"`
	Reason *string   `json:"reason,omitempty"`
}

// Transfer is a custodial withdrawal moving through the approval state
// machine: DRAFT -> PENDING_APPROVAL -> APPROVED | REJECTED. APPROVED and
// REJECTED are terminal. ApprovalsRequired is frozen from the source vault's
// policy at creation and never re-evaluated.
type Transfer struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	FromVault string          `json:"from_vault"`
	ToAddress string          `json:"to_address"`
	Asset     string          `json:"asset"`
	Amount    decimal.Decimal `json:"amount"`

	Network  string           `json:"network"`
	Priority TransferPriority `json:"priority"`
	Memo     *string          `json:"memo,omitempty"`

	// Derived at creation, not independently settable.
	FeeLabel string `json:"fee_label"`
	EtaLabel string `json:"eta_label"`

	ApprovalsRequired int              `json:"approvals_required"`
	Approvals         []ApprovalVote   `json:"approvals"`
	Rejection         *RejectionRecord `json:"rejection,omitempty"`

	Status TransferStatus `json:"status"`
}

func (t *Transfer) IsTerminal() bool {
	return t.Status == TransferStatusApproved || t.Status == TransferStatusRejected
}

// HasApprover reports whether the approver has already voted on this transfer.
func (t *Transfer) HasApprover(approverID string) bool {
	for _, v := range t.Approvals {
		if v.By == approverID {
			return true
		}
	}
	return false
}

func (t *Transfer) Clone() *Transfer {
	cp := *t
	cp.Approvals = make([]ApprovalVote, len(t.Approvals))
	copy(cp.Approvals, t.Approvals)
	if t.Memo != nil {
		memo := *t.Memo
		cp.Memo = &memo
	}
	if t.Rejection != nil {
		rej := *t.Rejection
		if t.Rejection.Reason != nil {
			reason := *t.Rejection.Reason
			rej.Reason = &reason
		}
		cp.Rejection = &rej
	}
	return &cp
}

// CreateTransferRequest carries the caller-supplied draft fields.
type CreateTransferRequest struct {
	FromVault string           `json:"from_vault"`
	ToAddress string           `json:"to_address"`
	Asset     string           `json:"asset"`
	Amount    decimal.Decimal  `json:"amount"`
	Network   string           `json:"network"`
	Priority  TransferPriority `json:"priority"`
	Memo      *string          `json:"memo,omitempty"`
}

func (r *CreateTransferRequest) Validate() error {
	if r.FromVault == "" {
		return xerrors.ErrInvalidAccount
	}
	if r.ToAddress == "" {
		return xerrors.ErrInvalidAddress
	}
	if r.Asset == "" {
		return xerrors.ErrInvalidSymbol
	}
	if !r.Amount.IsPositive() {
		return xerrors.ErrInvalidAmount
	}
	if r.Priority != TransferPriorityStandard && r.Priority != TransferPriorityFast {
		return xerrors.ErrInvalidInput
	}
	return nil
}
