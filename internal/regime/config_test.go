package regime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfig_ValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errIn  string
	}{
		{
			"unordered thresholds",
			func(c *Config) { c.Thresholds.Up = -0.5 },
			"strictly ordered",
		},
		{
			"equal thresholds",
			func(c *Config) { c.Thresholds.StrongUp = c.Thresholds.Up },
			"strictly ordered",
		},
		{
			"zero min real indicators",
			func(c *Config) { c.MinRealIndicators = 0 },
			"min_real_indicators",
		},
		{
			"history too small",
			func(c *Config) { c.HistoryMaxEntries = 2 },
			"history_max_entries",
		},
		{
			"non-positive window",
			func(c *Config) { c.HistoryWindowHours = 0 },
			"history_window_hours",
		},
		{
			"wrong breakpoint count",
			func(c *Config) { c.VIXPercentileBreakpoints = []float64{12, 16, 20} },
			"exactly 5",
		},
		{
			"non-increasing breakpoints",
			func(c *Config) { c.VIXPercentileBreakpoints = []float64{12, 16, 16, 24, 30} },
			"strictly increasing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errIn)
		})
	}
}

func TestLoadConfig_PartialOverlayKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regime.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_real_indicators: 3\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MinRealIndicators)
	assert.Equal(t, 20, cfg.HistoryMaxEntries, "unnamed fields keep their defaults")
	assert.Equal(t, 1.0, cfg.Thresholds.StrongUp)
}

func TestLoadConfig_InvalidOverlayRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regime.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history_max_entries: 1\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid regime config")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read regime config")
}
