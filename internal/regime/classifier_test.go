package regime

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testAxes builds a full axis map from numeric scores, deriving directions
// through the default thresholds. Confidence defaults to OK.
func testAxes(scores map[Axis]float64) map[Axis]AxisScore {
	cfg := DefaultConfig()
	axes := make(map[Axis]AxisScore, len(AllAxes))
	for _, axis := range AllAxes {
		s := scores[axis]
		axes[axis] = AxisScore{
			Axis:       axis,
			Name:       axis.Name(),
			Score:      s,
			Direction:  cfg.Thresholds.DirectionFor(s),
			Confidence: OK,
			Inputs:     map[string]float64{},
		}
	}
	return axes
}

func withConfidence(axes map[Axis]AxisScore, axis Axis, c Confidence) map[Axis]AxisScore {
	a := axes[axis]
	a.Confidence = c
	axes[axis] = a
	return axes
}

func randomScores(rng *rand.Rand) map[Axis]float64 {
	scores := make(map[Axis]float64, len(AllAxes))
	for _, axis := range AllAxes {
		scores[axis] = rng.Float64()*4 - 2
	}
	return scores
}

func TestClassify_LiquidityDrainDominates(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 300; i++ {
		scores := randomScores(rng)
		scores[AxisLiquidity] = -1.0 - rng.Float64() // always ≤ -1.0

		c := Classify(testAxes(scores))
		require.Equal(t, LiquidityDrain, c.Regime,
			"liquidity strong-down must dominate regardless of other axes (iteration %d)", i)
	}
}

func TestClassify_LiquidityFloodDominates(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 300; i++ {
		scores := randomScores(rng)
		scores[AxisLiquidity] = 1.0 + rng.Float64() // always ≥ 1.0

		c := Classify(testAxes(scores))
		require.Equal(t, LiquidityDriven, c.Regime,
			"liquidity strong-up must dominate regardless of other axes (iteration %d)", i)
	}
}

func TestClassify_LiquidityConfidencePropagates(t *testing.T) {
	axes := testAxes(map[Axis]float64{AxisLiquidity: -1.5})
	axes = withConfidence(axes, AxisLiquidity, Stale)

	c := Classify(axes)
	assert.Equal(t, LiquidityDrain, c.Regime)
	assert.Equal(t, Stale, c.Confidence, "short-circuit carries the liquidity axis confidence")
}

func TestClassify_CreditStress(t *testing.T) {
	t.Run("outright credit collapse", func(t *testing.T) {
		c := Classify(testAxes(map[Axis]float64{AxisCredit: -1.4}))
		assert.Equal(t, CreditStress, c.Regime)
	})

	t.Run("credit down with volatility spike", func(t *testing.T) {
		c := Classify(testAxes(map[Axis]float64{AxisCredit: -0.5, AxisVolatility: 1.3}))
		assert.Equal(t, CreditStress, c.Regime)
	})

	t.Run("credit down alone is not stress", func(t *testing.T) {
		c := Classify(testAxes(map[Axis]float64{AxisCredit: -0.5, AxisGrowth: 0.5}))
		assert.NotEqual(t, CreditStress, c.Regime)
	})

	t.Run("confidence is worst of credit and volatility", func(t *testing.T) {
		axes := testAxes(map[Axis]float64{AxisCredit: -1.4, AxisVolatility: 1.2})
		axes = withConfidence(axes, AxisVolatility, Partial)

		c := Classify(axes)
		assert.Equal(t, CreditStress, c.Regime)
		assert.Equal(t, Partial, c.Confidence)
	})
}

func TestClassify_GrowthInflationMatrix(t *testing.T) {
	tests := []struct {
		name   string
		scores map[Axis]float64
		want   RegimeType
	}{
		{"goldilocks", map[Axis]float64{AxisGrowth: 0.6, AxisInflation: 0.0, AxisLiquidity: 0.5}, Goldilocks},
		{"reflation", map[Axis]float64{AxisGrowth: 0.6, AxisInflation: 0.7}, Reflation},
		{"stagflation", map[Axis]float64{AxisGrowth: -0.6, AxisInflation: 0.7}, Stagflation},
		{"deflation", map[Axis]float64{AxisGrowth: -0.6, AxisInflation: -0.5}, Deflation},
		{"deflation with flat inflation", map[Axis]float64{AxisGrowth: -0.6, AxisInflation: 0.0}, Deflation},
		{"risk-on from growth alone", map[Axis]float64{AxisGrowth: 0.6, AxisInflation: 0.0}, RiskOn},
		{"risk-on from liquidity alone", map[Axis]float64{AxisLiquidity: 0.5}, RiskOn},
		{"risk-off from liquidity", map[Axis]float64{AxisLiquidity: -0.5}, RiskOff},
		{"neutral when nothing moves", map[Axis]float64{}, Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(testAxes(tt.scores))
			assert.Equal(t, tt.want, c.Regime)
			assert.NotEmpty(t, c.Drivers)
		})
	}
}

func TestClassify_MatrixConfidenceIsWorstOfFour(t *testing.T) {
	axes := testAxes(map[Axis]float64{AxisGrowth: 0.6, AxisInflation: 0.7})
	axes = withConfidence(axes, AxisInflation, Stale)
	axes = withConfidence(axes, AxisVolatility, Unavailable) // not in the worst-of set

	c := Classify(axes)
	assert.Equal(t, Reflation, c.Regime)
	assert.Equal(t, Stale, c.Confidence, "volatility confidence must not drag the matrix confidence")
}

func TestClassify_DollarExtremesAnnotateButNeverFlip(t *testing.T) {
	base := Classify(testAxes(map[Axis]float64{AxisGrowth: 0.6, AxisInflation: 0.7}))
	surged := Classify(testAxes(map[Axis]float64{AxisGrowth: 0.6, AxisInflation: 0.7, AxisDollar: 1.5}))

	assert.Equal(t, base.Regime, surged.Regime, "dollar extreme must not change the label")
	assert.Greater(t, len(surged.Drivers), len(base.Drivers), "dollar extreme appends a driver")
	assert.Contains(t, surged.Drivers[len(surged.Drivers)-1], "Dollar")
}
