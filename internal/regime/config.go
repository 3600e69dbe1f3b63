package regime

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the engine's tunable thresholds. Everything a caller may
// reasonably override lives here; indicator weight tables stay fixed in the
// scorers so the two never drift apart.
type Config struct {
	Thresholds DirectionThresholds `yaml:"direction_thresholds"`

	// Proxy indicators fold in only when fewer than this many real
	// indicators were available for an axis.
	MinRealIndicators int `yaml:"min_real_indicators"`

	// Transition history bounds.
	HistoryMaxEntries  int     `yaml:"history_max_entries"`
	HistoryWindowHours float64 `yaml:"history_window_hours"`

	// Fixed historical VIX breakpoints for the percentile buckets
	// 20/50/70/80/90 (above the last breakpoint reads as the 95th).
	VIXPercentileBreakpoints []float64 `yaml:"vix_percentile_breakpoints"`
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() *Config {
	return &Config{
		Thresholds: DirectionThresholds{
			StrongUp:   1.0,
			Up:         0.3,
			Down:       -0.3,
			StrongDown: -1.0,
		},
		MinRealIndicators:        2,
		HistoryMaxEntries:        20,
		HistoryWindowHours:       4.0,
		VIXPercentileBreakpoints: []float64{12, 16, 20, 24, 30},
	}
}

// LoadConfig reads a Config from a yaml file, starting from defaults so a
// partial file only overrides what it names.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read regime config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse regime config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid regime config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations whose thresholds cannot classify anything
// coherently.
func (c *Config) Validate() error {
	t := c.Thresholds
	if !(t.StrongDown < t.Down && t.Down < t.Up && t.Up < t.StrongUp) {
		return fmt.Errorf("direction thresholds must be strictly ordered: strong_down %.2f < down %.2f < up %.2f < strong_up %.2f",
			t.StrongDown, t.Down, t.Up, t.StrongUp)
	}
	if c.MinRealIndicators < 1 {
		return fmt.Errorf("min_real_indicators must be ≥1, got %d", c.MinRealIndicators)
	}
	if c.HistoryMaxEntries < 3 {
		return fmt.Errorf("history_max_entries must be ≥3, got %d", c.HistoryMaxEntries)
	}
	if c.HistoryWindowHours <= 0 {
		return fmt.Errorf("history_window_hours must be positive, got %.2f", c.HistoryWindowHours)
	}
	if len(c.VIXPercentileBreakpoints) != 5 {
		return fmt.Errorf("vix_percentile_breakpoints needs exactly 5 cut points, got %d", len(c.VIXPercentileBreakpoints))
	}
	for i := 1; i < len(c.VIXPercentileBreakpoints); i++ {
		if c.VIXPercentileBreakpoints[i] <= c.VIXPercentileBreakpoints[i-1] {
			return fmt.Errorf("vix_percentile_breakpoints must be strictly increasing")
		}
	}
	return nil
}

// VIXPercentile maps a raw VIX level onto the fixed percentile buckets.
func (c *Config) VIXPercentile(vix float64) int {
	buckets := []int{20, 50, 70, 80, 90}
	for i, bp := range c.VIXPercentileBreakpoints {
		if vix < bp {
			return buckets[i]
		}
	}
	return 95
}
