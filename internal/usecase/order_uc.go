package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"custody-service/internal/domain"
	"custody-service/internal/metrics"
	"custody-service/internal/repository"
	"custody-service/internal/risk"
	"custody-service/internal/xerrors"
	"custody-service/pkg/utils"
)

// Risk scores above this threshold route the order to manual review
// instead of filling.
const reviewRiskThreshold = 70

// quoteSource is the slice of the market surface order placement needs.
type quoteSource interface {
	GetQuote(ctx context.Context, symbol string) (*domain.Quote, error)
}

// OrderUsecase places trade orders with at-most-once semantics per
// idempotency key.
type OrderUsecase struct {
	orders repository.OrderRepository
	market quoteSource
	idgen  *utils.IDGenerator
	logger *zap.Logger

	quoteTimeout time.Duration

	// Serializes placements end to end so a suspended quote fetch cannot
	// let two duplicate submissions interleave past the replay check.
	mu sync.Mutex
}

func NewOrderUsecase(
	orders repository.OrderRepository,
	market quoteSource,
	idgen *utils.IDGenerator,
	quoteTimeout time.Duration,
	logger *zap.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		orders:       orders,
		market:       market,
		idgen:        idgen,
		quoteTimeout: quoteTimeout,
		logger:       logger,
	}
}

// PlaceOrder executes a single-shot order placement:
//
//  1. A key that has been seen before returns the original order unchanged,
//     whatever was requested this time (replay, not an error).
//  2. The current quote is fetched with a timeout and one retry; BUY
//     executes at the ask, SELL at the bid.
//  3. The risk score decides FILLED vs REVIEW.
//
// When the quote cannot be retrieved a FAILED terminal order is recorded
// under the key, so retries of the same request replay the failure instead
// of double-submitting, and ErrQuoteUnavailable is returned.
func (uc *OrderUsecase) PlaceOrder(ctx context.Context, req *domain.PlaceOrderRequest) (*domain.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if existing, err := uc.orders.GetByIdempotencyKey(ctx, req.IdempotencyKey); err == nil {
		metrics.OrderReplays.Inc()
		uc.logger.Info("order replayed by idempotency key",
			zap.String("order_id", existing.ID),
			zap.String("idempotency_key", req.IdempotencyKey))
		return existing, nil
	}

	quote, err := uc.fetchQuote(ctx, req.Symbol)
	if err != nil {
		failed := &domain.Order{
			ID:             uc.idgen.NewID("ord"),
			IdempotencyKey: req.IdempotencyKey,
			Symbol:         req.Symbol,
			Side:           req.Side,
			Qty:            req.Qty,
			Status:         domain.OrderStatusFailed,
			AccountID:      req.AccountID,
			CreatedAt:      time.Now(),
		}
		if _, _, insErr := uc.orders.CreateIfAbsent(ctx, failed); insErr != nil {
			return nil, fmt.Errorf("failed to record failed order: %w", insErr)
		}
		metrics.OrdersPlaced.WithLabelValues(string(domain.OrderStatusFailed)).Inc()
		uc.logger.Warn("order failed, quote unavailable",
			zap.String("order_id", failed.ID),
			zap.String("symbol", req.Symbol),
			zap.Error(err))
		return nil, fmt.Errorf("quote for %s: %w", req.Symbol, xerrors.ErrQuoteUnavailable)
	}

	px := quote.Ask
	if req.Side == domain.OrderSideSell {
		px = quote.Bid
	}

	score := risk.ScoreOrder(req.Symbol, req.Qty, px)
	status := domain.OrderStatusFilled
	if score > reviewRiskThreshold {
		status = domain.OrderStatusReview
	}

	order := &domain.Order{
		ID:             uc.idgen.NewID("ord"),
		IdempotencyKey: req.IdempotencyKey,
		Symbol:         req.Symbol,
		Side:           req.Side,
		Qty:            req.Qty,
		Price:          px,
		Status:         status,
		RiskScore:      score,
		AccountID:      req.AccountID,
		CreatedAt:      time.Now(),
	}

	stored, created, err := uc.orders.CreateIfAbsent(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	if created {
		metrics.OrdersPlaced.WithLabelValues(string(status)).Inc()
	}

	uc.logger.Info("order placed",
		zap.String("order_id", stored.ID),
		zap.String("symbol", stored.Symbol),
		zap.String("side", string(stored.Side)),
		zap.String("status", string(stored.Status)),
		zap.Int("risk_score", stored.RiskScore))
	return stored, nil
}

// fetchQuote retries once on failure before giving up. Each attempt gets
// its own timeout so a first attempt that burned the deadline does not
// turn the retry into an instant failure.
func (uc *OrderUsecase) fetchQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	quote, err := uc.tryQuote(ctx, symbol)
	if err == nil {
		return quote, nil
	}
	if errors.Is(err, context.Canceled) {
		return nil, err
	}

	return uc.tryQuote(ctx, symbol)
}

func (uc *OrderUsecase) tryQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	qctx, cancel := context.WithTimeout(ctx, uc.quoteTimeout)
	defer cancel()

	return uc.market.GetQuote(qctx, symbol)
}

func (uc *OrderUsecase) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return uc.orders.List(ctx)
}
