package regime

import "fmt"

// RegimeType is the closed 11-way regime enumeration.
type RegimeType int

const (
	Unknown RegimeType = iota
	Neutral
	Goldilocks
	Reflation
	Stagflation
	Deflation
	LiquidityDriven
	LiquidityDrain
	CreditStress
	RiskOn
	RiskOff
)

func (r RegimeType) String() string {
	switch r {
	case Goldilocks:
		return "GOLDILOCKS"
	case Reflation:
		return "REFLATION"
	case Stagflation:
		return "STAGFLATION"
	case Deflation:
		return "DEFLATION"
	case LiquidityDriven:
		return "LIQUIDITY_DRIVEN"
	case LiquidityDrain:
		return "LIQUIDITY_DRAIN"
	case CreditStress:
		return "CREDIT_STRESS"
	case RiskOn:
		return "RISK_ON"
	case RiskOff:
		return "RISK_OFF"
	case Neutral:
		return "NEUTRAL"
	default:
		return "UNKNOWN"
	}
}

func (r RegimeType) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Dangerous reports whether the regime belongs to the set that bans new
// directional risk outright.
func (r RegimeType) Dangerous() bool {
	switch r {
	case Stagflation, Deflation, CreditStress, LiquidityDrain:
		return true
	default:
		return false
	}
}

// Classification is the classifier output: one regime, its confidence, and
// the ordered dominant-driver texts explaining which axes decided it.
type Classification struct {
	Regime     RegimeType `json:"regime"`
	Confidence Confidence `json:"confidence"`
	Drivers    []string   `json:"drivers"`
}

// Classify resolves six axis readings into one regime through a fixed
// dominance hierarchy: Liquidity extremes first, then Credit (with a
// Volatility assist), then the Growth×Inflation matrix. Dollar extremes are
// recorded as drivers but never change the label.
func Classify(axes map[Axis]AxisScore) Classification {
	growth := axes[AxisGrowth]
	inflation := axes[AxisInflation]
	liquidity := axes[AxisLiquidity]
	credit := axes[AxisCredit]
	dollar := axes[AxisDollar]
	volatility := axes[AxisVolatility]

	var c Classification

	switch {
	// 1. Liquidity drain dominates everything: nothing rallies when the
	//    money is leaving.
	case liquidity.Direction == StrongDown:
		c = Classification{
			Regime:     LiquidityDrain,
			Confidence: liquidity.Confidence,
			Drivers:    []string{fmt.Sprintf("Liquidity draining hard (%.2f)", liquidity.Score)},
		}

	// 2. A liquidity flood floats all boats regardless of fundamentals.
	case liquidity.Direction == StrongUp:
		c = Classification{
			Regime:     LiquidityDriven,
			Confidence: liquidity.Confidence,
			Drivers:    []string{fmt.Sprintf("Liquidity expanding hard (%.2f)", liquidity.Score)},
		}

	// 3. Credit stress: outright, or deteriorating credit with volatility
	//    spiking alongside it.
	case credit.Direction == StrongDown ||
		(credit.Direction == Down && volatility.Direction == StrongUp):
		drivers := []string{fmt.Sprintf("Credit stress (%.2f)", credit.Score)}
		if volatility.Direction == StrongUp {
			drivers = append(drivers, fmt.Sprintf("Volatility spiking (%.2f)", volatility.Score))
		}
		c = Classification{
			Regime:     CreditStress,
			Confidence: WorstConfidence(credit.Confidence, volatility.Confidence),
			Drivers:    drivers,
		}

	// 4. Growth×Inflation matrix, liquidity tilting the ties.
	default:
		c = classifyMatrix(growth, inflation, liquidity)
		c.Confidence = WorstConfidence(growth.Confidence, inflation.Confidence,
			liquidity.Confidence, credit.Confidence)
	}

	// Dollar extremes annotate the drivers but never flip the regime.
	switch dollar.Direction {
	case StrongUp:
		c.Drivers = append(c.Drivers, fmt.Sprintf("Dollar surging (%.2f), headwind for risk assets", dollar.Score))
	case StrongDown:
		c.Drivers = append(c.Drivers, fmt.Sprintf("Dollar sliding (%.2f), tailwind for risk assets", dollar.Score))
	}

	return c
}

func classifyMatrix(growth, inflation, liquidity AxisScore) Classification {
	growthUp := growth.Direction == Up || growth.Direction == StrongUp
	growthDown := growth.Direction == Down || growth.Direction == StrongDown
	inflationUp := inflation.Direction == Up || inflation.Direction == StrongUp
	inflationDown := inflation.Direction == Down || inflation.Direction == StrongDown
	liquidityUp := liquidity.Direction == Up || liquidity.Direction == StrongUp
	liquidityDown := liquidity.Direction == Down || liquidity.Direction == StrongDown

	switch {
	case growthUp && !inflationUp && liquidityUp:
		return Classification{
			Regime: Goldilocks,
			Drivers: []string{
				fmt.Sprintf("Growth up (%.2f), inflation contained (%.2f)", growth.Score, inflation.Score),
				fmt.Sprintf("Liquidity supportive (%.2f)", liquidity.Score),
			},
		}
	case growthUp && inflationUp:
		return Classification{
			Regime: Reflation,
			Drivers: []string{
				fmt.Sprintf("Growth up (%.2f) with inflation rising (%.2f)", growth.Score, inflation.Score),
			},
		}
	case growthDown && inflationUp:
		return Classification{
			Regime: Stagflation,
			Drivers: []string{
				fmt.Sprintf("Growth falling (%.2f) while inflation rises (%.2f)", growth.Score, inflation.Score),
			},
		}
	case growthDown && (inflationDown || inflation.Direction == Flat):
		return Classification{
			Regime: Deflation,
			Drivers: []string{
				fmt.Sprintf("Growth falling (%.2f), inflation soft (%.2f)", growth.Score, inflation.Score),
			},
		}
	case growthUp || liquidityUp:
		return Classification{
			Regime: RiskOn,
			Drivers: []string{
				fmt.Sprintf("Growth %.2f / liquidity %.2f lean positive", growth.Score, liquidity.Score),
			},
		}
	case growthDown || liquidityDown:
		return Classification{
			Regime: RiskOff,
			Drivers: []string{
				fmt.Sprintf("Growth %.2f / liquidity %.2f lean negative", growth.Score, liquidity.Score),
			},
		}
	default:
		return Classification{
			Regime:  Neutral,
			Drivers: []string{"No axis shows a decisive reading"},
		}
	}
}
