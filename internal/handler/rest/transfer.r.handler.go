package hrest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"custody-service/internal/domain"
	"custody-service/pkg/response"
)

func (h *CustodyRestHandler) CreateTransferDraft(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.transferUC.CreateDraft(r.Context(), &in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, t)
}

func (h *CustodyRestHandler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	transfers, err := h.transferUC.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, transfers)
}

func (h *CustodyRestHandler) SubmitTransfer(w http.ResponseWriter, r *http.Request) {
	t, err := h.transferUC.Submit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, t)
}

type approverJSON struct {
	Approver string  `json:"approver"`
	Reason   *string `json:"reason,omitempty"`
}

func (h *CustodyRestHandler) ApproveTransfer(w http.ResponseWriter, r *http.Request) {
	var in approverJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.transferUC.Approve(r.Context(), chi.URLParam(r, "id"), in.Approver)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, t)
}

func (h *CustodyRestHandler) RejectTransfer(w http.ResponseWriter, r *http.Request) {
	var in approverJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.transferUC.Reject(r.Context(), chi.URLParam(r, "id"), in.Approver, in.Reason)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, t)
}

func (h *CustodyRestHandler) ListBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.transferUC.ListBalances(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, balances)
}

func (h *CustodyRestHandler) ListVaults(w http.ResponseWriter, r *http.Request) {
	vaults, err := h.transferUC.ListVaults(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, vaults)
}

// ---- approval queue ----

func (h *CustodyRestHandler) ListApprovalItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.approvalUC.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, items)
}

func (h *CustodyRestHandler) EnqueueTransfer(w http.ResponseWriter, r *http.Request) {
	var in domain.EnqueueTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.approvalUC.EnqueueTransfer(r.Context(), &in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, item)
}

type orderReviewJSON struct {
	Summary string `json:"summary"`
}

func (h *CustodyRestHandler) EnqueueOrderReview(w http.ResponseWriter, r *http.Request) {
	var in orderReviewJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.approvalUC.EnqueueOrderReview(r.Context(), in.Summary)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, item)
}

func (h *CustodyRestHandler) ApproveQueueItem(w http.ResponseWriter, r *http.Request) {
	var in approverJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.approvalUC.Approve(r.Context(), chi.URLParam(r, "id"), in.Approver)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, item)
}

func (h *CustodyRestHandler) RejectQueueItem(w http.ResponseWriter, r *http.Request) {
	var in approverJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.approvalUC.Reject(r.Context(), chi.URLParam(r, "id"), in.Approver, in.Reason)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, item)
}

func (h *CustodyRestHandler) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	removed, err := h.approvalUC.ClearCompleted(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]int{"removed": removed})
}

func (h *CustodyRestHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.approvalUC.ClearAll(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]string{"status": "cleared"})
}
