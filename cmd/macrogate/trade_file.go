package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/regimelab/macrogate/internal/gates"
	"github.com/regimelab/macrogate/internal/regime"
)

// tradeFile is the yaml schema for a trade candidate. Enumerations travel
// as their wire labels and are validated on load.
type tradeFile struct {
	Symbol     string `yaml:"symbol"`
	Side       string `yaml:"side"`
	AssetClass string `yaml:"asset_class"`

	Score          float64 `yaml:"score"`
	Signal         string  `yaml:"signal"`
	Quality        string  `yaml:"quality"`
	LiquidityScore float64 `yaml:"liquidity_score"`

	Entry  *float64 `yaml:"entry,omitempty"`
	Stop   *float64 `yaml:"stop,omitempty"`
	Target *float64 `yaml:"target,omitempty"`

	SpreadCost   float64 `yaml:"spread_cost"`
	UTCHour      int     `yaml:"utc_hour"`
	NewsUpcoming bool    `yaml:"news_upcoming"`

	AccountRiskPercent        float64 `yaml:"account_risk_percent"`
	TotalOpenRiskPercent      float64 `yaml:"total_open_risk_percent"`
	CorrelatedExposurePercent float64 `yaml:"correlated_exposure_percent"`
}

func loadTrade(path string) (*gates.TradeContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trade file %s: %w", path, err)
	}

	var tf tradeFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse trade file %s: %w", path, err)
	}

	var side gates.TradeSide
	switch strings.ToUpper(tf.Side) {
	case "LONG", "":
		side = gates.Long
	case "SHORT":
		side = gates.Short
	default:
		return nil, fmt.Errorf("trade file %s: unknown side %q", path, tf.Side)
	}

	quality := regime.OK
	if tf.Quality != "" {
		q, ok := regime.ParseConfidence(strings.ToUpper(tf.Quality))
		if !ok {
			return nil, fmt.Errorf("trade file %s: unknown quality %q", path, tf.Quality)
		}
		quality = q
	}

	if tf.UTCHour < 0 || tf.UTCHour > 23 {
		return nil, fmt.Errorf("trade file %s: utc_hour %d outside 0-23", path, tf.UTCHour)
	}

	return &gates.TradeContext{
		Symbol:                    tf.Symbol,
		Side:                      side,
		AssetClass:                tf.AssetClass,
		Score:                     tf.Score,
		Signal:                    tf.Signal,
		Quality:                   quality,
		LiquidityScore:            tf.LiquidityScore,
		Entry:                     tf.Entry,
		Stop:                      tf.Stop,
		Target:                    tf.Target,
		SpreadCost:                tf.SpreadCost,
		UTCHour:                   tf.UTCHour,
		NewsUpcoming:              tf.NewsUpcoming,
		AccountRiskPercent:        tf.AccountRiskPercent,
		TotalOpenRiskPercent:      tf.TotalOpenRiskPercent,
		CorrelatedExposurePercent: tf.CorrelatedExposurePercent,
	}, nil
}
