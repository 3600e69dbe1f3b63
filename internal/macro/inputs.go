package macro

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FearGreed is the CNN-style fear/greed composite.
type FearGreed struct {
	Value float64 `json:"value" yaml:"value"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
}

// Inputs is a flat bag of optional macro/market indicators. Every field is a
// pointer: nil means the series was unavailable, which is never an error —
// scorers degrade confidence and fall back to proxies instead.
type Inputs struct {
	// Market proxies (always cheap to obtain)
	VIX         *float64   `json:"vix,omitempty" yaml:"vix,omitempty"`
	VIXChange   *float64   `json:"vix_change,omitempty" yaml:"vix_change,omitempty"`
	Treasury2Y  *float64   `json:"treasury_2y,omitempty" yaml:"treasury_2y,omitempty"`
	Treasury10Y *float64   `json:"treasury_10y,omitempty" yaml:"treasury_10y,omitempty"`
	Treasury30Y *float64   `json:"treasury_30y,omitempty" yaml:"treasury_30y,omitempty"`
	YieldCurve  *float64   `json:"yield_curve_10y2y,omitempty" yaml:"yield_curve_10y2y,omitempty"`
	DollarIndex *float64   `json:"dollar_index,omitempty" yaml:"dollar_index,omitempty"`
	DollarChg   *float64   `json:"dollar_change,omitempty" yaml:"dollar_change,omitempty"`
	FearGreed   *FearGreed `json:"fear_greed,omitempty" yaml:"fear_greed,omitempty"`

	// Growth
	RealGDPYoY        *float64 `json:"real_gdp_yoy,omitempty" yaml:"real_gdp_yoy,omitempty"`
	Payrolls          *float64 `json:"payrolls,omitempty" yaml:"payrolls,omitempty"`
	PayrollsPrev      *float64 `json:"payrolls_prev,omitempty" yaml:"payrolls_prev,omitempty"`
	InitialClaims     *float64 `json:"initial_claims,omitempty" yaml:"initial_claims,omitempty"`
	ConsumerSentiment *float64 `json:"consumer_sentiment,omitempty" yaml:"consumer_sentiment,omitempty"`

	// Inflation
	CPIYoY      *float64 `json:"cpi_yoy,omitempty" yaml:"cpi_yoy,omitempty"`
	PCEYoY      *float64 `json:"pce_yoy,omitempty" yaml:"pce_yoy,omitempty"`
	Breakeven5Y *float64 `json:"breakeven_5y,omitempty" yaml:"breakeven_5y,omitempty"`

	// Liquidity (Fed plumbing, $bn unless noted)
	FedBalanceSheet     *float64 `json:"fed_balance_sheet,omitempty" yaml:"fed_balance_sheet,omitempty"`
	FedBalanceSheetPrev *float64 `json:"fed_balance_sheet_prev,omitempty" yaml:"fed_balance_sheet_prev,omitempty"`
	ReverseRepo         *float64 `json:"reverse_repo,omitempty" yaml:"reverse_repo,omitempty"`
	TreasuryGeneralAcct *float64 `json:"treasury_general_account,omitempty" yaml:"treasury_general_account,omitempty"`
	M2                  *float64 `json:"m2,omitempty" yaml:"m2,omitempty"`

	// Credit
	HYSpread        *float64 `json:"hy_spread,omitempty" yaml:"hy_spread,omitempty"`
	AAASpread       *float64 `json:"aaa_spread,omitempty" yaml:"aaa_spread,omitempty"`
	FinancialStress *float64 `json:"financial_stress_index,omitempty" yaml:"financial_stress_index,omitempty"`
	DelinquencyRate *float64 `json:"delinquency_rate,omitempty" yaml:"delinquency_rate,omitempty"`
}

// Float returns a pointer to v, for building Inputs literals in tests and
// callers that already hold concrete values.
func Float(v float64) *float64 { return &v }

// PayrollsChangePct returns the month-over-month payrolls change in percent,
// or (0, false) when either level is missing.
func (in *Inputs) PayrollsChangePct() (float64, bool) {
	if in.Payrolls == nil || in.PayrollsPrev == nil || *in.PayrollsPrev == 0 {
		return 0, false
	}
	return (*in.Payrolls / *in.PayrollsPrev * 100.0) - 100.0, true
}

// BalanceSheetChangePct returns the Fed balance sheet change in percent
// against the prior observation, or (0, false) when unavailable.
func (in *Inputs) BalanceSheetChangePct() (float64, bool) {
	if in.FedBalanceSheet == nil || in.FedBalanceSheetPrev == nil || *in.FedBalanceSheetPrev == 0 {
		return 0, false
	}
	return (*in.FedBalanceSheet / *in.FedBalanceSheetPrev * 100.0) - 100.0, true
}

// LoadInputs reads an Inputs record from a yaml file. Unknown keys are
// rejected so a typo in an indicator name surfaces instead of silently
// degrading every axis to proxies.
func LoadInputs(path string) (*Inputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read macro inputs %s: %w", path, err)
	}

	var in Inputs
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to parse macro inputs %s: %w", path, err)
	}
	return &in, nil
}
