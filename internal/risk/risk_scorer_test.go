package risk

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestScoreOrderBaseScores(t *testing.T) {
	cases := []struct {
		symbol string
		want   int
	}{
		{"BTC", 10},
		{"ETH", 12},
		{"USDC", 2},
		{"SOL", 8},
		{"", 8},
	}

	for _, tc := range cases {
		got := ScoreOrder(tc.symbol, d("1"), d("1"))
		assert.Equal(t, tc.want, got, "symbol %q", tc.symbol)
	}
}

func TestScoreOrderNotionalLadder(t *testing.T) {
	cases := []struct {
		name string
		qty  string
		px   string
		want int
	}{
		{"below first rung", "1", "9999", 10},
		{"at 10k", "1", "10000", 25},
		{"at 50k", "1", "50000", 40},
		{"at 200k", "1", "200000", 60},
		{"at 1M", "1", "1000000", 85},
		{"qty times price crosses rung", "2", "5000", 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ScoreOrder("BTC", d(tc.qty), d(tc.px))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestScoreOrderNegativeInputsClampToZeroNotional(t *testing.T) {
	assert.Equal(t, 10, ScoreOrder("BTC", d("-5"), d("100000")))
	assert.Equal(t, 12, ScoreOrder("ETH", d("3"), d("-1")))
}

func TestScoreOrderAlwaysWithinBounds(t *testing.T) {
	qtys := []string{"0", "0.0001", "1", "42", "1000", "99999999"}
	prices := []string{"0", "0.5", "1", "5200", "98000", "1000000"}

	for _, q := range qtys {
		for _, p := range prices {
			score := ScoreOrder("ETH", d(q), d(p))
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestScoreOrderMonotonicInNotional(t *testing.T) {
	// Fix symbol and walk notional upward; the score must never decrease.
	steps := []string{"0", "100", "9999", "10000", "49999", "50000",
		"199999", "200000", "999999", "1000000", "50000000"}

	prev := -1
	for _, n := range steps {
		score := ScoreOrder("BTC", d("1"), d(n))
		assert.GreaterOrEqual(t, score, prev, "notional %s", n)
		prev = score
	}
}
