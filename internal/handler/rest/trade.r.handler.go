package hrest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"custody-service/internal/domain"
	"custody-service/pkg/response"
)

func (h *CustodyRestHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var in domain.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderUC.PlaceOrder(r.Context(), &in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, order)
}

func (h *CustodyRestHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderUC.ListOrders(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, orders)
}

func (h *CustodyRestHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.marketUC.ListAssets(r.Context()))
}

func (h *CustodyRestHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	quote, err := h.marketUC.GetQuote(r.Context(), symbol)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, quote)
}

func (h *CustodyRestHandler) RequestForQuote(w http.ResponseWriter, r *http.Request) {
	var in domain.RfqRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	quotes, err := h.marketUC.RequestForQuote(r.Context(), &in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, quotes)
}

type stakeJSON struct {
	Symbol string          `json:"symbol"`
	Amount decimal.Decimal `json:"amount"`
}

func (h *CustodyRestHandler) Stake(w http.ResponseWriter, r *http.Request) {
	var in stakeJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	pos, err := h.stakingUC.Stake(r.Context(), in.Symbol, in.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, pos)
}

func (h *CustodyRestHandler) ListStaking(w http.ResponseWriter, r *http.Request) {
	positions, err := h.stakingUC.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, positions)
}

func (h *CustodyRestHandler) ListLoanOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.lendingUC.ListOffers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, offers)
}

type loanIntentJSON struct {
	OfferID string          `json:"offer_id"`
	Amount  decimal.Decimal `json:"amount"`
}

func (h *CustodyRestHandler) CreateLoanIntent(w http.ResponseWriter, r *http.Request) {
	var in loanIntentJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	intent, err := h.lendingUC.CreateLoanIntent(r.Context(), in.OfferID, in.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, intent)
}
