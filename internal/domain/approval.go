package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"custody-service/internal/xerrors"
)

type QueueStatus string

const (
	QueueStatusPending  QueueStatus = "PENDING"
	QueueStatusInReview QueueStatus = "IN_REVIEW"
	QueueStatusApproved QueueStatus = "APPROVED"
	QueueStatusRejected QueueStatus = "REJECTED"
)

type ApprovalItemType string

const (
	ApprovalItemTypeTransfer    ApprovalItemType = "TRANSFER"
	ApprovalItemTypeOrderReview ApprovalItemType = "ORDER_REVIEW"
)

// ApprovalQueueItem is one entry in the signer-facing work queue. The queue
// is a staging view with its own vote list; the transfer store remains the
// backend of record and the two are not reconciled automatically.
//
// Transfer-shaped items carry the full draft fields plus a risk score;
// order-review items carry only a free-text summary.
type ApprovalQueueItem struct {
	ID        string           `json:"id"`
	Type      ApprovalItemType `json:"type"`
	CreatedAt time.Time        `json:"created_at"`
	Status    QueueStatus      `json:"status"`

	// TRANSFER fields
	FromVault         string           `json:"from_vault,omitempty"`
	ToAddress         string           `json:"to_address,omitempty"`
	Asset             string           `json:"asset,omitempty"`
	Amount            decimal.Decimal  `json:"amount,omitempty"`
	Network           string           `json:"network,omitempty"`
	Priority          string           `json:"priority,omitempty"`
	Memo              *string          `json:"memo,omitempty"`
	FeeLabel          string           `json:"fee_label,omitempty"`
	EtaLabel          string           `json:"eta_label,omitempty"`
	RiskScore         int              `json:"risk_score,omitempty"`
	ApprovalsRequired int              `json:"approvals_required,omitempty"`
	Approvals         []ApprovalVote   `json:"approvals,omitempty"`
	Rejection         *RejectionRecord `json:"rejection,omitempty"`

	// ORDER_REVIEW fields
	Summary string `json:"summary,omitempty"`
}

func (i *ApprovalQueueItem) IsTerminal() bool {
	return i.Status == QueueStatusApproved || i.Status == QueueStatusRejected
}

func (i *ApprovalQueueItem) HasApprover(approverID string) bool {
	for _, v := range i.Approvals {
		if v.By == approverID {
			return true
		}
	}
	return false
}

func (i *ApprovalQueueItem) Clone() *ApprovalQueueItem {
	cp := *i
	cp.Approvals = make([]ApprovalVote, len(i.Approvals))
	copy(cp.Approvals, i.Approvals)
	if i.Memo != nil {
		memo := *i.Memo
		cp.Memo = &memo
	}
	if i.Rejection != nil {
		rej := *i.Rejection
		if i.Rejection.Reason != nil {
			reason := *i.Rejection.Reason
			rej.Reason = &reason
		}
		cp.Rejection = &rej
	}
	return &cp
}

// EnqueueTransferRequest carries the draft fields for a queue transfer item.
type EnqueueTransferRequest struct {
	FromVault         string          `json:"from_vault"`
	ToAddress         string          `json:"to_address"`
	Asset             string          `json:"asset"`
	Amount            decimal.Decimal `json:"amount"`
	Network           string          `json:"network"`
	Priority          string          `json:"priority"`
	Memo              *string         `json:"memo,omitempty"`
	FeeLabel          string          `json:"fee_label"`
	EtaLabel          string          `json:"eta_label"`
	ApprovalsRequired int             `json:"approvals_required"`
}

func (r *EnqueueTransferRequest) Validate() error {
	if r.FromVault == "" {
		return xerrors.ErrInvalidAccount
	}
	if r.Asset == "" {
		return xerrors.ErrInvalidSymbol
	}
	if !r.Amount.IsPositive() {
		return xerrors.ErrInvalidAmount
	}
	if r.ApprovalsRequired < 1 {
		return xerrors.ErrInvalidInput
	}
	return nil
}
