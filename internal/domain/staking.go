package domain

import "github.com/shopspring/decimal"

// StakingPosition is one account-wide staked holding per symbol.
type StakingPosition struct {
	Symbol       string          `json:"symbol"`
	StakedAmount decimal.Decimal `json:"staked_amount"`
	RewardsYtd   decimal.Decimal `json:"rewards_ytd"`
	Apr          decimal.Decimal `json:"apr"`
}

func (p *StakingPosition) Clone() *StakingPosition {
	cp := *p
	return &cp
}
