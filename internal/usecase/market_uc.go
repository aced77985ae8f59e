package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"custody-service/internal/domain"
	"custody-service/internal/xerrors"
	"custody-service/pkg/utils"
)

// MarketUsecase serves the deterministic demo market: a fixed asset
// catalogue, two-sided quotes around a per-symbol mid, and an RFQ fan-out
// across three venues.
type MarketUsecase struct {
	idgen  *utils.IDGenerator
	logger *zap.Logger
}

func NewMarketUsecase(idgen *utils.IDGenerator, logger *zap.Logger) *MarketUsecase {
	return &MarketUsecase{
		idgen:  idgen,
		logger: logger,
	}
}

var assetCatalogue = []*domain.Asset{
	{Symbol: "BTC", Name: "Bitcoin"},
	{Symbol: "ETH", Name: "Ethereum"},
	{Symbol: "USDC", Name: "USD Coin"},
}

var midPrices = map[string]decimal.Decimal{
	"BTC":  decimal.NewFromInt(98_000),
	"ETH":  decimal.NewFromInt(5_200),
	"USDC": decimal.NewFromInt(1),
}

var (
	defaultSpread = decimal.RequireFromString("0.0025")
	stableSpread  = decimal.RequireFromString("0.0001")
	one           = decimal.NewFromInt(1)
)

func (uc *MarketUsecase) ListAssets(ctx context.Context) []*domain.Asset {
	out := make([]*domain.Asset, 0, len(assetCatalogue))
	for _, a := range assetCatalogue {
		cp := *a
		out = append(out, &cp)
	}
	return out
}

// GetQuote prices one symbol. Unknown symbols fail with ErrQuoteUnavailable;
// the order engine decides how to record that.
func (uc *MarketUsecase) GetQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mid, ok := midPrices[symbol]
	if !ok {
		return nil, xerrors.ErrQuoteUnavailable
	}

	spread := defaultSpread
	if symbol == "USDC" {
		spread = stableSpread
	}

	return &domain.Quote{
		Symbol: symbol,
		Bid:    mid.Mul(one.Sub(spread)),
		Ask:    mid.Mul(one.Add(spread)),
		Ts:     time.Now(),
	}, nil
}

// MidPrice returns the reference mid for a symbol, zero when unlisted.
// Transfer review risk scoring uses this as the price leg.
func (uc *MarketUsecase) MidPrice(symbol string) decimal.Decimal {
	if mid, ok := midPrices[symbol]; ok {
		return mid
	}
	return decimal.Zero
}

var rfqVenues = []string{"VenueA", "VenueB", "VenueC"}

// venue i prices at mid * (1 + (i-1) * 0.0008)
var rfqStep = decimal.RequireFromString("0.0008")

const rfqQuoteTTL = 12 * time.Second

func (uc *MarketUsecase) RequestForQuote(ctx context.Context, req *domain.RfqRequest) ([]*domain.RfqQuote, error) {
	if req.Base == "" || req.Quote == "" {
		return nil, xerrors.ErrInvalidSymbol
	}

	mid, ok := midPrices[req.Base]
	if !ok {
		return nil, xerrors.ErrQuoteUnavailable
	}

	now := time.Now()
	out := make([]*domain.RfqQuote, 0, len(rfqVenues))
	for i, venue := range rfqVenues {
		skew := rfqStep.Mul(decimal.NewFromInt(int64(i - 1)))
		out = append(out, &domain.RfqQuote{
			ID:        uc.idgen.NewID("rfq"),
			Venue:     venue,
			Price:     mid.Mul(one.Add(skew)),
			ExpiresAt: now.Add(rfqQuoteTTL),
		})
	}

	uc.logger.Info("rfq fan-out completed",
		zap.String("base", req.Base),
		zap.String("quote", req.Quote),
		zap.Int("venues", len(out)))
	return out, nil
}
