package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regimelab/macrogate/internal/gates"
	"github.com/regimelab/macrogate/internal/regime"
)

func writeTradeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trade.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTrade(t *testing.T) {
	path := writeTradeFile(t, `
symbol: BTC-USD
side: short
asset_class: crypto
score: 72
signal: SELL
quality: partial
liquidity_score: 65
entry: 64000
stop: 65500
target: 59000
utc_hour: 14
account_risk_percent: 1.5
`)

	trade, err := loadTrade(path)
	require.NoError(t, err)

	assert.Equal(t, "BTC-USD", trade.Symbol)
	assert.Equal(t, gates.Short, trade.Side)
	assert.Equal(t, regime.Partial, trade.Quality)
	require.NotNil(t, trade.Entry)
	assert.Equal(t, 64000.0, *trade.Entry)
	assert.Equal(t, 1.5, trade.AccountRiskPercent)
}

func TestLoadTrade_Defaults(t *testing.T) {
	trade, err := loadTrade(writeTradeFile(t, "symbol: ETH-USD\n"))
	require.NoError(t, err)

	assert.Equal(t, gates.Long, trade.Side, "side defaults to LONG")
	assert.Equal(t, regime.OK, trade.Quality, "quality defaults to OK")
	assert.Nil(t, trade.Entry)
}

func TestLoadTrade_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errIn   string
	}{
		{"bad side", "side: sideways\n", "unknown side"},
		{"bad quality", "quality: great\n", "unknown quality"},
		{"bad hour", "utc_hour: 24\n", "outside 0-23"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadTrade(writeTradeFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errIn)
		})
	}
}
