package hrest

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"custody-service/internal/usecase"
	"custody-service/internal/xerrors"
	"custody-service/pkg/response"
)

type CustodyRestHandler struct {
	orderUC    *usecase.OrderUsecase
	transferUC *usecase.TransferUsecase
	approvalUC *usecase.ApprovalQueueUsecase
	marketUC   *usecase.MarketUsecase
	stakingUC  *usecase.StakingUsecase
	lendingUC  *usecase.LendingUsecase
	logger     *zap.Logger
}

func NewCustodyRestHandler(
	orderUC *usecase.OrderUsecase,
	transferUC *usecase.TransferUsecase,
	approvalUC *usecase.ApprovalQueueUsecase,
	marketUC *usecase.MarketUsecase,
	stakingUC *usecase.StakingUsecase,
	lendingUC *usecase.LendingUsecase,
	logger *zap.Logger,
) *CustodyRestHandler {
	return &CustodyRestHandler{
		orderUC:    orderUC,
		transferUC: transferUC,
		approvalUC: approvalUC,
		marketUC:   marketUC,
		stakingUC:  stakingUC,
		lendingUC:  lendingUC,
		logger:     logger,
	}
}

func (h *CustodyRestHandler) registerRoutes(r chi.Router) {
	r.Route("/custody", func(r chi.Router) {
		r.Post("/orders", h.PlaceOrder)
		r.Get("/orders", h.ListOrders)

		r.Get("/assets", h.ListAssets)
		r.Get("/quotes/{symbol}", h.GetQuote)
		r.Post("/rfq", h.RequestForQuote)

		r.Post("/transfers", h.CreateTransferDraft)
		r.Get("/transfers", h.ListTransfers)
		r.Post("/transfers/{id}/submit", h.SubmitTransfer)
		r.Post("/transfers/{id}/approve", h.ApproveTransfer)
		r.Post("/transfers/{id}/reject", h.RejectTransfer)

		r.Get("/balances", h.ListBalances)
		r.Get("/vaults", h.ListVaults)

		r.Route("/approvals", func(r chi.Router) {
			r.Get("/", h.ListApprovalItems)
			r.Post("/transfers", h.EnqueueTransfer)
			r.Post("/order-reviews", h.EnqueueOrderReview)
			r.Post("/{id}/approve", h.ApproveQueueItem)
			r.Post("/{id}/reject", h.RejectQueueItem)
			r.Delete("/completed", h.ClearCompleted)
			r.Delete("/", h.ClearAll)
		})

		r.Post("/staking/stake", h.Stake)
		r.Get("/staking", h.ListStaking)

		r.Get("/lending/offers", h.ListLoanOffers)
		r.Post("/lending/intents", h.CreateLoanIntent)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
}

// Router builds the full chi router with middleware. Exposed separately
// from Start so tests can mount it on httptest servers.
func (h *CustodyRestHandler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	h.registerRoutes(r)
	return r
}

func (h *CustodyRestHandler) Start(addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: h.Router(),
	}

	h.logger.Info("custody REST service running", zap.String("addr", addr))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// writeError maps the error taxonomy onto HTTP statuses.
func (h *CustodyRestHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, xerrors.ErrNotFound),
		errors.Is(err, xerrors.ErrVaultNotFound),
		errors.Is(err, xerrors.ErrTransferNotFound),
		errors.Is(err, xerrors.ErrOrderNotFound),
		errors.Is(err, xerrors.ErrBalanceNotFound),
		errors.Is(err, xerrors.ErrItemNotFound),
		errors.Is(err, xerrors.ErrOfferNotFound):
		response.Error(w, r, http.StatusNotFound, err.Error())

	case errors.Is(err, xerrors.ErrInsufficientBalance):
		response.Error(w, r, http.StatusConflict, err.Error())

	case errors.Is(err, xerrors.ErrQuoteUnavailable):
		response.Error(w, r, http.StatusBadGateway, err.Error())

	case errors.Is(err, xerrors.ErrInvalidRequest),
		errors.Is(err, xerrors.ErrInvalidInput),
		errors.Is(err, xerrors.ErrInvalidAmount),
		errors.Is(err, xerrors.ErrInvalidSymbol),
		errors.Is(err, xerrors.ErrInvalidSide),
		errors.Is(err, xerrors.ErrInvalidAccount),
		errors.Is(err, xerrors.ErrInvalidAddress),
		errors.Is(err, xerrors.ErrIdempotencyKeyRequired),
		errors.Is(err, xerrors.ErrApproverRequired),
		errors.Is(err, xerrors.ErrAmountBelowMinimum):
		response.Error(w, r, http.StatusBadRequest, err.Error())

	default:
		h.logger.Error("unhandled request error", zap.Error(err))
		response.Error(w, r, http.StatusInternalServerError, xerrors.ErrInternalServer.Error())
	}
}
