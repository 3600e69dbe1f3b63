package gates

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config contains the hard thresholds for the five gate checks.
type Config struct {
	// Risk gate caps
	PerTradeRiskCapPercent    float64 `yaml:"per_trade_risk_cap_percent"`    // >2% = FAIL
	TotalRiskCapPercent       float64 `yaml:"total_risk_cap_percent"`        // >5% = FAIL
	CorrelatedExposureWarnPct float64 `yaml:"correlated_exposure_warn_pct"`  // >3% = WARN
	VolSizingWarnPercentile   int     `yaml:"vol_sizing_warn_percentile"`    // ≥80th = WARN, halve sizing

	// Micro gate thresholds
	MinRiskRewardRatio float64 `yaml:"min_risk_reward_ratio"` // <2.0 = FAIL
	MinLiquidityScore  float64 `yaml:"min_liquidity_score"`   // <40 = FAIL
	WarnScore          float64 `yaml:"warn_score"`            // <50 = WARN

	// Execution gate
	RolloverHoursUTC   []int   `yaml:"rollover_hours_utc"`    // low-liquidity hours = WARN
	MaxSpreadCostRatio float64 `yaml:"max_spread_cost_ratio"` // spread > 10% of target move = FAIL

	// Macro gate: asset classes treated as risk-on for the dangerous-regime
	// long ban.
	RiskOnAssetClasses []string `yaml:"risk_on_asset_classes"`
}

// DefaultConfig returns the production gate thresholds.
func DefaultConfig() *Config {
	return &Config{
		PerTradeRiskCapPercent:    2.0,
		TotalRiskCapPercent:       5.0,
		CorrelatedExposureWarnPct: 3.0,
		VolSizingWarnPercentile:   80,

		MinRiskRewardRatio: 2.0,
		MinLiquidityScore:  40,
		WarnScore:          50,

		RolloverHoursUTC:   []int{21, 22, 23, 0, 1, 2, 3},
		MaxSpreadCostRatio: 0.10,

		RiskOnAssetClasses: []string{"crypto", "equities", "commodities", "high-beta"},
	}
}

// LoadConfig reads gate thresholds from a yaml file on top of defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gates config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse gates config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gates config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects incoherent gate thresholds.
func (c *Config) Validate() error {
	if c.PerTradeRiskCapPercent <= 0 || c.TotalRiskCapPercent <= 0 {
		return fmt.Errorf("risk caps must be positive (per-trade %.2f, total %.2f)",
			c.PerTradeRiskCapPercent, c.TotalRiskCapPercent)
	}
	if c.PerTradeRiskCapPercent > c.TotalRiskCapPercent {
		return fmt.Errorf("per-trade cap %.2f%% cannot exceed total cap %.2f%%",
			c.PerTradeRiskCapPercent, c.TotalRiskCapPercent)
	}
	if c.MinRiskRewardRatio <= 0 {
		return fmt.Errorf("min_risk_reward_ratio must be positive, got %.2f", c.MinRiskRewardRatio)
	}
	if c.MaxSpreadCostRatio <= 0 || c.MaxSpreadCostRatio >= 1 {
		return fmt.Errorf("max_spread_cost_ratio must be in (0,1), got %.2f", c.MaxSpreadCostRatio)
	}
	for _, h := range c.RolloverHoursUTC {
		if h < 0 || h > 23 {
			return fmt.Errorf("rollover hour %d outside 0-23", h)
		}
	}
	return nil
}

func (c *Config) isRolloverHour(hour int) bool {
	for _, h := range c.RolloverHoursUTC {
		if h == hour {
			return true
		}
	}
	return false
}

func (c *Config) isRiskOnAssetClass(class string) bool {
	for _, ac := range c.RiskOnAssetClasses {
		if ac == class {
			return true
		}
	}
	return false
}
