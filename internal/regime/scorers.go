package regime

import (
	"fmt"
	"time"

	"github.com/regimelab/macrogate/internal/macro"
)

// Scorer turns a macro.Inputs bag into the six axis readings. Each axis
// follows the same fallback policy: accumulate whichever preferred real
// series are present; if fewer than the configured minimum were available,
// fold in lower-weight market proxies (VIX, yield curve, fear/greed).
type Scorer struct {
	cfg *Config
}

// NewScorer creates a scorer with the given configuration (nil means
// defaults).
func NewScorer(cfg *Config) *Scorer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Scorer{cfg: cfg}
}

// ScoreAll evaluates every axis against the same input bag.
func (s *Scorer) ScoreAll(in *macro.Inputs, now time.Time) map[Axis]AxisScore {
	return map[Axis]AxisScore{
		AxisGrowth:     s.scoreGrowth(in, now),
		AxisInflation:  s.scoreInflation(in, now),
		AxisLiquidity:  s.scoreLiquidity(in, now),
		AxisCredit:     s.scoreCredit(in, now),
		AxisDollar:     s.scoreDollar(in, now),
		AxisVolatility: s.scoreVolatility(in, now),
	}
}

func (s *Scorer) scoreGrowth(in *macro.Inputs, now time.Time) AxisScore {
	acc := newAxisAccumulator(s.cfg)

	if v := in.RealGDPYoY; v != nil {
		acc.addReal("real_gdp_yoy", *v, linearScore(*v, 2.0, 1.5), 1.0,
			fmt.Sprintf("real GDP %.1f%% YoY vs 2.0%% trend", *v))
	}
	if chg, ok := in.PayrollsChangePct(); ok {
		acc.addReal("payrolls_change_pct", chg, linearScore(chg, 0.0, 0.2), 0.8,
			fmt.Sprintf("payrolls %+.2f%% MoM", chg))
	}
	if v := in.InitialClaims; v != nil {
		acc.addReal("initial_claims", *v, linearScore(230000-*v, 0, 60000), 0.8,
			fmt.Sprintf("initial claims %.0fk vs 230k baseline", *v/1000))
	}
	if v := in.ConsumerSentiment; v != nil {
		acc.addReal("consumer_sentiment", *v, linearScore(*v, 85, 15), 0.6,
			fmt.Sprintf("consumer sentiment %.1f vs 85 baseline", *v))
	}

	if acc.needsProxies() {
		if fg := in.FearGreed; fg != nil {
			acc.addProxy("fear_greed", fg.Value, linearScore(fg.Value, 50, 25), 0.4,
				fmt.Sprintf("fear/greed %.0f as growth sentiment", fg.Value))
		}
		if v := in.YieldCurve; v != nil {
			acc.addProxy("yield_curve_10y2y", *v, linearScore(*v, 0, 1.0), 0.3,
				fmt.Sprintf("10y2y curve %+.2f%% as growth expectations", *v))
		}
	}

	return acc.finish(AxisGrowth, now)
}

func (s *Scorer) scoreInflation(in *macro.Inputs, now time.Time) AxisScore {
	acc := newAxisAccumulator(s.cfg)

	if v := in.CPIYoY; v != nil {
		acc.addReal("cpi_yoy", *v, linearScore(*v, 2.5, 1.5), 1.0,
			fmt.Sprintf("CPI %.1f%% YoY vs 2.5%% reference", *v))
	}
	if v := in.PCEYoY; v != nil {
		acc.addReal("pce_yoy", *v, linearScore(*v, 2.2, 1.2), 0.9,
			fmt.Sprintf("PCE %.1f%% YoY vs 2.2%% reference", *v))
	}
	if v := in.Breakeven5Y; v != nil {
		acc.addReal("breakeven_5y", *v, linearScore(*v, 2.3, 0.8), 0.7,
			fmt.Sprintf("5y breakeven %.2f%% vs 2.3%% anchor", *v))
	}

	if acc.needsProxies() {
		if v := in.Treasury10Y; v != nil {
			acc.addProxy("treasury_10y", *v, linearScore(*v, 4.0, 1.0), 0.4,
				fmt.Sprintf("10y yield %.2f%% as inflation expectations", *v))
		}
		if v := in.Treasury30Y; v != nil {
			acc.addProxy("treasury_30y", *v, linearScore(*v, 4.2, 1.0), 0.3,
				fmt.Sprintf("30y yield %.2f%% as long inflation expectations", *v))
		}
	}

	return acc.finish(AxisInflation, now)
}

func (s *Scorer) scoreLiquidity(in *macro.Inputs, now time.Time) AxisScore {
	acc := newAxisAccumulator(s.cfg)

	if chg, ok := in.BalanceSheetChangePct(); ok {
		acc.addReal("fed_balance_sheet_change_pct", chg, linearScore(chg, 0.0, 0.5), 1.0,
			fmt.Sprintf("Fed balance sheet %+.2f%%", chg))
	}
	if v := in.ReverseRepo; v != nil {
		acc.addReal("reverse_repo", *v, linearScore(800-*v, 0, 800), 0.6,
			fmt.Sprintf("reverse repo $%.0fbn parked", *v))
	}
	if v := in.TreasuryGeneralAcct; v != nil {
		acc.addReal("treasury_general_account", *v, linearScore(700-*v, 0, 500), 0.5,
			fmt.Sprintf("TGA $%.0fbn vs $700bn baseline", *v))
	}
	if v := in.M2; v != nil {
		acc.addReal("m2", *v, linearScore(*v, 21000, 1500), 0.4,
			fmt.Sprintf("M2 $%.0fbn", *v))
	}

	if acc.needsProxies() {
		if v := in.VIX; v != nil {
			acc.addProxy("vix", *v, linearScore(20-*v, 0, 10), 0.5,
				fmt.Sprintf("VIX %.1f as liquidity stress", *v))
		}
		if fg := in.FearGreed; fg != nil {
			acc.addProxy("fear_greed", fg.Value, linearScore(fg.Value, 50, 25), 0.3,
				fmt.Sprintf("fear/greed %.0f as risk appetite", fg.Value))
		}
	}

	return acc.finish(AxisLiquidity, now)
}

func (s *Scorer) scoreCredit(in *macro.Inputs, now time.Time) AxisScore {
	acc := newAxisAccumulator(s.cfg)

	if v := in.HYSpread; v != nil {
		acc.addReal("hy_spread", *v, linearScore(4.0-*v, 0, 2.0), 1.0,
			fmt.Sprintf("HY spread %.2f%% vs 4.0%% reference", *v))
	}
	if v := in.AAASpread; v != nil {
		acc.addReal("aaa_spread", *v, linearScore(1.0-*v, 0, 0.5), 0.7,
			fmt.Sprintf("AAA spread %.2f%% vs 1.0%% reference", *v))
	}
	if v := in.FinancialStress; v != nil {
		acc.addReal("financial_stress_index", *v, linearScore(-*v, 0, 1.0), 0.8,
			fmt.Sprintf("financial stress index %+.2f", *v))
	}
	if v := in.DelinquencyRate; v != nil {
		acc.addReal("delinquency_rate", *v, linearScore(3.0-*v, 0, 1.5), 0.6,
			fmt.Sprintf("delinquency rate %.2f%% vs 3.0%% baseline", *v))
	}

	if acc.needsProxies() {
		if v := in.VIX; v != nil {
			acc.addProxy("vix", *v, linearScore(22.5-*v, 0, 10), 0.5,
				fmt.Sprintf("VIX %.1f as credit stress", *v))
		}
		if v := in.YieldCurve; v != nil {
			acc.addProxy("yield_curve_10y2y", *v, linearScore(*v, 0, 1.0), 0.3,
				fmt.Sprintf("10y2y curve %+.2f%% as credit conditions", *v))
		}
	}

	return acc.finish(AxisCredit, now)
}

func (s *Scorer) scoreDollar(in *macro.Inputs, now time.Time) AxisScore {
	acc := newAxisAccumulator(s.cfg)

	if v := in.DollarIndex; v != nil {
		acc.addReal("dollar_index", *v, linearScore(*v, 103, 5), 1.0,
			fmt.Sprintf("DXY %.1f vs 103 reference", *v))
	}
	if v := in.DollarChg; v != nil {
		acc.addReal("dollar_change", *v, linearScore(*v, 0, 1.5), 0.8,
			fmt.Sprintf("DXY %+.2f change", *v))
	}

	if acc.needsProxies() {
		if v := in.Treasury2Y; v != nil {
			acc.addProxy("treasury_2y", *v, linearScore(*v, 4.0, 1.0), 0.4,
				fmt.Sprintf("2y yield %.2f%% as rate differential", *v))
		}
	}

	return acc.finish(AxisDollar, now)
}

func (s *Scorer) scoreVolatility(in *macro.Inputs, now time.Time) AxisScore {
	acc := newAxisAccumulator(s.cfg)

	if v := in.VIX; v != nil {
		acc.addReal("vix", *v, linearScore(*v, 20, 7.5), 1.0,
			fmt.Sprintf("VIX %.1f vs 20 baseline", *v))
	}
	if v := in.VIXChange; v != nil {
		acc.addReal("vix_change", *v, linearScore(*v, 0, 5.0), 0.8,
			fmt.Sprintf("VIX %+.1f change", *v))
	}

	if acc.needsProxies() {
		if fg := in.FearGreed; fg != nil {
			acc.addProxy("fear_greed", fg.Value, linearScore(50-fg.Value, 0, 25), 0.5,
				fmt.Sprintf("fear/greed %.0f as volatility proxy", fg.Value))
		}
	}

	score := acc.finish(AxisVolatility, now)

	// The volatility axis also carries its percentile bucket so downstream
	// sizing rules can key off it without re-deriving from raw VIX.
	if v := in.VIX; v != nil {
		pct := s.cfg.VIXPercentile(*v)
		score.Inputs["vix_percentile"] = float64(pct)
		score.Reasons = append(score.Reasons, fmt.Sprintf("VIX at ~%dth percentile of history", pct))
	}

	return score
}
