package macro

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInputs(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inputs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadInputs(t *testing.T) {
	path := writeInputs(t, `
vix: 22.5
cpi_yoy: 3.1
fear_greed:
  value: 38
  label: Fear
hy_spread: 4.2
`)

	in, err := LoadInputs(path)
	require.NoError(t, err)

	require.NotNil(t, in.VIX)
	assert.Equal(t, 22.5, *in.VIX)
	require.NotNil(t, in.CPIYoY)
	assert.Equal(t, 3.1, *in.CPIYoY)
	require.NotNil(t, in.FearGreed)
	assert.Equal(t, 38.0, in.FearGreed.Value)
	assert.Equal(t, "Fear", in.FearGreed.Label)

	assert.Nil(t, in.RealGDPYoY, "absent keys stay nil, not zero")
	assert.Nil(t, in.DollarIndex)
}

func TestLoadInputs_UnknownKeyRejected(t *testing.T) {
	path := writeInputs(t, "vixx: 22.5\n")

	_, err := LoadInputs(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse macro inputs")
}

func TestLoadInputs_MissingFile(t *testing.T) {
	_, err := LoadInputs(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read macro inputs")
}

func TestPayrollsChangePct(t *testing.T) {
	in := &Inputs{Payrolls: Float(159_000), PayrollsPrev: Float(158_000)}
	chg, ok := in.PayrollsChangePct()
	require.True(t, ok)
	assert.InDelta(t, 0.6329, chg, 1e-3)

	_, ok = (&Inputs{Payrolls: Float(159_000)}).PayrollsChangePct()
	assert.False(t, ok)

	_, ok = (&Inputs{Payrolls: Float(159_000), PayrollsPrev: Float(0)}).PayrollsChangePct()
	assert.False(t, ok, "a zero prior level cannot anchor a percent change")
}

func TestBalanceSheetChangePct(t *testing.T) {
	in := &Inputs{FedBalanceSheet: Float(7_800), FedBalanceSheetPrev: Float(8_000)}
	chg, ok := in.BalanceSheetChangePct()
	require.True(t, ok)
	assert.InDelta(t, -2.5, chg, 1e-9)

	_, ok = (&Inputs{FedBalanceSheetPrev: Float(8_000)}).BalanceSheetChangePct()
	assert.False(t, ok)
}
