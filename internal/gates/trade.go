package gates

import (
	"github.com/regimelab/macrogate/internal/regime"
)

// TradeSide is the proposed trade direction.
type TradeSide int

const (
	Long TradeSide = iota
	Short
)

func (s TradeSide) String() string {
	if s == Short {
		return "SHORT"
	}
	return "LONG"
}

func (s TradeSide) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// TradeContext is a proposed trade candidate with the facts external
// collaborators computed about it: signal/quality from the scoring engine,
// risk percentages from the portfolio layer. The gates never mutate it.
type TradeContext struct {
	Symbol     string    `json:"symbol"`
	Side       TradeSide `json:"side"`
	AssetClass string    `json:"asset_class"`

	// From the asset scoring collaborator
	Score          float64           `json:"score"`           // 0-100 composite
	Signal         string            `json:"signal"`          // e.g. BUY, WATCH, WAIT
	Quality        regime.Confidence `json:"quality"`         // data quality behind the score
	LiquidityScore float64           `json:"liquidity_score"` // 0-100

	// Price levels (optional; risk:reward is only checked when all three
	// are present)
	Entry  *float64 `json:"entry,omitempty"`
	Stop   *float64 `json:"stop,omitempty"`
	Target *float64 `json:"target,omitempty"`

	// Execution facts
	SpreadCost   float64 `json:"spread_cost"` // same units as prices
	UTCHour      int     `json:"utc_hour"`
	NewsUpcoming bool    `json:"news_upcoming"`

	// From the portfolio risk collaborator, in percent of account
	AccountRiskPercent        float64 `json:"account_risk_percent"`
	TotalOpenRiskPercent      float64 `json:"total_open_risk_percent"`
	CorrelatedExposurePercent float64 `json:"correlated_exposure_percent"`
}

// RiskReward computes the reward:risk ratio from the price levels, or
// (0, false) when any level is missing or the stop distance is not positive.
func (t *TradeContext) RiskReward() (float64, bool) {
	if t.Entry == nil || t.Stop == nil || t.Target == nil {
		return 0, false
	}
	entry, stop, target := *t.Entry, *t.Stop, *t.Target

	var risk, reward float64
	if t.Side == Short {
		risk = stop - entry
		reward = entry - target
	} else {
		risk = entry - stop
		reward = target - entry
	}
	if risk <= 0 {
		return 0, false
	}
	return reward / risk, true
}

// TargetMove returns the absolute entry→target distance, or (0, false) when
// either level is missing.
func (t *TradeContext) TargetMove() (float64, bool) {
	if t.Entry == nil || t.Target == nil {
		return 0, false
	}
	move := *t.Target - *t.Entry
	if move < 0 {
		move = -move
	}
	return move, true
}
