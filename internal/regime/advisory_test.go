package regime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTilts_Stagflation(t *testing.T) {
	axes := testAxes(map[Axis]float64{AxisGrowth: -0.8, AxisInflation: 0.9})

	tilts := GenerateTilts(Stagflation, axes)
	require.Len(t, tilts, 3)

	assert.Equal(t, 1, tilts[0].Rank)
	assert.Equal(t, TiltLong, tilts[0].Direction)
	assert.Equal(t, "gold", tilts[0].Target, "stagflation puts gold first")
	assert.Equal(t, "USD", tilts[1].Target)
	assert.Equal(t, TiltShort, tilts[2].Direction)
	assert.Equal(t, "risk assets", tilts[2].Target)
}

func TestGenerateTilts_ConfidenceIsWorstOfFourAxes(t *testing.T) {
	axes := testAxes(map[Axis]float64{AxisGrowth: 0.6, AxisInflation: 0.7})
	axes = withConfidence(axes, AxisCredit, Partial)
	axes = withConfidence(axes, AxisVolatility, Unavailable) // excluded from the worst-of set

	tilts := GenerateTilts(Reflation, axes)
	require.NotEmpty(t, tilts)
	for _, tilt := range tilts {
		assert.Equal(t, Partial, tilt.Confidence)
	}
}

func TestGenerateTilts_DollarSurgeCautionsShortUSD(t *testing.T) {
	axes := testAxes(map[Axis]float64{AxisLiquidity: 1.5, AxisDollar: 1.4})

	tilts := GenerateTilts(LiquidityDriven, axes)
	require.Len(t, tilts, 3)

	var shortUSD *MesoTilt
	for i := range tilts {
		if tilts[i].Direction == TiltShort && tilts[i].Target == "USD" {
			shortUSD = &tilts[i]
		} else {
			assert.NotContains(t, tilts[i].Rationale, "caution",
				"only the short-USD tilt gets the dollar caution")
		}
	}
	require.NotNil(t, shortUSD)
	assert.Contains(t, shortUSD.Rationale, "caution: dollar axis is at a strong-up extreme")
}

func TestGenerateTilts_UnknownRegimeYieldsNone(t *testing.T) {
	assert.Nil(t, GenerateTilts(Unknown, testAxes(nil)))
	assert.Nil(t, GenerateTilts(Neutral, testAxes(nil)))
}

func TestGenerateProhibitions_VolatilitySizingCap(t *testing.T) {
	t.Run("strong-up direction triggers the cap", func(t *testing.T) {
		axes := testAxes(map[Axis]float64{AxisVolatility: 1.7})

		ps := GenerateProhibitions(Goldilocks, axes)
		require.Len(t, ps, 1)
		assert.Equal(t, CapSizingPercent, ps[0].Kind)
		assert.Equal(t, 50.0, ps[0].Pct)
		assert.Contains(t, ps[0].Text, "max 50% sizing")
	})

	t.Run("calm volatility leaves a benign regime unrestricted", func(t *testing.T) {
		axes := testAxes(map[Axis]float64{AxisVolatility: 0.2})
		assert.Empty(t, GenerateProhibitions(Goldilocks, axes))
	})
}

func TestGenerateProhibitions_DangerousRegimesBanLongs(t *testing.T) {
	axes := testAxes(nil)

	tests := []struct {
		regime  RegimeType
		classes []string
	}{
		{Stagflation, []string{"equities", "crypto"}},
		{Deflation, []string{"commodities", "equities"}},
		{CreditStress, []string{"credit", "crypto"}},
		{LiquidityDrain, []string{"crypto", "equities"}},
	}

	for _, tt := range tests {
		t.Run(tt.regime.String(), func(t *testing.T) {
			ps := GenerateProhibitions(tt.regime, axes)
			require.Len(t, ps, len(tt.classes))
			for i, p := range ps {
				assert.Equal(t, DisallowDirectionInAssetClass, p.Kind)
				assert.Equal(t, TiltLong, p.Direction)
				assert.Equal(t, tt.classes[i], p.AssetClass)
				assert.Contains(t, p.Text, "no new LONG "+tt.classes[i])
			}
		})
	}
}

func TestProhibitionTexts(t *testing.T) {
	assert.Nil(t, ProhibitionTexts(nil))

	ps := GenerateProhibitions(Stagflation, testAxes(nil))
	texts := ProhibitionTexts(ps)
	require.Len(t, texts, len(ps))
	for i := range ps {
		assert.Equal(t, ps[i].Text, texts[i])
	}
}

func TestGenerateAlerts_LiquidityAndCredit(t *testing.T) {
	axes := testAxes(map[Axis]float64{AxisLiquidity: -1.5, AxisCredit: -1.2})

	alerts := GenerateAlerts(axes, LiquidityDrain)
	require.Len(t, alerts, 2)

	assert.Equal(t, SeverityCritical, alerts[0].Severity)
	assert.Equal(t, "L", alerts[0].Axis)
	assert.Contains(t, alerts[0].Action, "no new risk")

	assert.Equal(t, SeverityCritical, alerts[1].Severity)
	assert.Equal(t, "C", alerts[1].Axis)
}

func TestGenerateAlerts_LiquidityDownIsOnlyWarning(t *testing.T) {
	axes := testAxes(map[Axis]float64{AxisLiquidity: -0.5})

	alerts := GenerateAlerts(axes, RiskOff)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityWarning, alerts[0].Severity)
	assert.Equal(t, "L", alerts[0].Axis)
}

func TestGenerateAlerts_VolatilityPercentile(t *testing.T) {
	withPercentile := func(pct float64) map[Axis]AxisScore {
		axes := testAxes(nil)
		vol := axes[AxisVolatility]
		vol.Inputs["vix_percentile"] = pct
		axes[AxisVolatility] = vol
		return axes
	}

	t.Run("high percentile warns and halves sizing", func(t *testing.T) {
		alerts := GenerateAlerts(withPercentile(90), Neutral)
		require.Len(t, alerts, 1)
		assert.Equal(t, SeverityWarning, alerts[0].Severity)
		assert.Equal(t, "V", alerts[0].Axis)
		assert.Equal(t, "halve position sizing", alerts[0].Action)
	})

	t.Run("low percentile is informational", func(t *testing.T) {
		alerts := GenerateAlerts(withPercentile(20), Neutral)
		require.Len(t, alerts, 1)
		assert.Equal(t, SeverityInfo, alerts[0].Severity)
	})

	t.Run("mid percentile stays quiet", func(t *testing.T) {
		assert.Empty(t, GenerateAlerts(withPercentile(50), Neutral))
	})
}

func TestGenerateAlerts_DegradedAxesSystemWarning(t *testing.T) {
	axes := testAxes(nil)
	axes = withConfidence(axes, AxisGrowth, Unavailable)
	axes = withConfidence(axes, AxisInflation, Unavailable)
	axes = withConfidence(axes, AxisDollar, Suspect)

	alerts := GenerateAlerts(axes, Neutral)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityWarning, alerts[0].Severity)
	assert.Equal(t, SystemAxis, alerts[0].Axis)
	assert.Contains(t, alerts[0].Message, "3 of 6 axes")
}

func TestGenerateAlerts_TwoDegradedAxesNoSystemWarning(t *testing.T) {
	axes := testAxes(nil)
	axes = withConfidence(axes, AxisGrowth, Unavailable)
	axes = withConfidence(axes, AxisInflation, Suspect)

	assert.Empty(t, GenerateAlerts(axes, Neutral))
}
