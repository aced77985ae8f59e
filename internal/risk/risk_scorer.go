// internal/risk/risk_scorer.go
package risk

import "github.com/shopspring/decimal"

// Notional thresholds and their additive score bonuses. The ladder is
// cumulative: a 1M notional earns every bonus below it.
var notionalBonuses = []struct {
	threshold decimal.Decimal
	bonus     int
}{
	{decimal.NewFromInt(10_000), 15},
	{decimal.NewFromInt(50_000), 15},
	{decimal.NewFromInt(200_000), 20},
	{decimal.NewFromInt(1_000_000), 25},
}

// ScoreOrder maps an order's size and asset class to a 0-100 risk score.
// Pure and deterministic. Every risk call site (order placement, transfer
// review) must go through this function so the formula cannot diverge.
func ScoreOrder(symbol string, qty, price decimal.Decimal) int {
	notional := clampZero(qty).Mul(clampZero(price))

	score := assetBaseScore(symbol)
	for _, b := range notionalBonuses {
		if notional.GreaterThanOrEqual(b.threshold) {
			score += b.bonus
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func assetBaseScore(symbol string) int {
	switch symbol {
	case "BTC":
		return 10
	case "ETH":
		return 12
	case "USDC":
		return 2
	default:
		return 8
	}
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
