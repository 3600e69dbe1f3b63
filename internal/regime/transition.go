package regime

import (
	"strings"
	"sync"
	"time"
)

// HistoryEntry is one prior reading kept for transition detection.
type HistoryEntry struct {
	Timestamp time.Time
	Regime    RegimeType
	Scores    map[Axis]float64
}

// History is the bounded, mutex-guarded buffer of prior snapshots. It is an
// explicitly owned value: the engine holds one, tests construct their own,
// and there is no package-level state.
type History struct {
	mu         sync.Mutex
	maxEntries int
	window     time.Duration
	entries    []HistoryEntry
}

// NewHistory creates a history bounded to maxEntries with the given read
// window.
func NewHistory(maxEntries int, window time.Duration) *History {
	return &History{
		maxEntries: maxEntries,
		window:     window,
	}
}

// Record appends a reading and trims to the most recent maxEntries.
func (h *History) Record(ts time.Time, regime RegimeType, axes map[Axis]AxisScore) {
	scores := make(map[Axis]float64, len(axes))
	for axis, s := range axes {
		scores[axis] = s.Score
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, HistoryEntry{Timestamp: ts, Regime: regime, Scores: scores})
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
	}
}

// Len returns the number of buffered entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// recent returns the entries inside the read window ending at now, oldest
// first. Entries outside the window are ignored but not evicted.
func (h *History) recent(now time.Time) []HistoryEntry {
	cutoff := now.Add(-h.window)

	h.mu.Lock()
	defer h.mu.Unlock()

	var out []HistoryEntry
	for _, e := range h.entries {
		if !e.Timestamp.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// DetectTransition inspects the recent window for regime instability and
// cross-axis momentum and returns a human-readable warning, or "" when the
// window is too thin or nothing is moving.
func (h *History) DetectTransition(now time.Time) string {
	recent := h.recent(now)
	if len(recent) < 3 {
		return ""
	}

	var warnings []string

	// Instability: the window crossed three or more distinct labels.
	distinct := map[RegimeType]struct{}{}
	for _, e := range recent {
		distinct[e.Regime] = struct{}{}
	}
	if len(distinct) >= 3 {
		warnings = append(warnings,
			"regime unstable: 3+ classifications in the recent window, reduce exposure until it settles")
	}

	// Momentum: oldest-to-newest delta per axis, each heuristic independent
	// and combinable.
	oldest, newest := recent[0], recent[len(recent)-1]
	delta := func(a Axis) float64 { return newest.Scores[a] - oldest.Scores[a] }

	if delta(AxisLiquidity) <= -0.5 && newest.Scores[AxisLiquidity] < 0 {
		warnings = append(warnings, "liquidity deteriorating rapidly")
	}
	if delta(AxisCredit) <= -0.5 && newest.Scores[AxisCredit] < 0 {
		warnings = append(warnings, "credit stress building")
	}
	if delta(AxisVolatility) >= 0.5 && newest.Scores[AxisVolatility] > 0.5 {
		warnings = append(warnings, "volatility rising fast from an elevated base")
	}
	if delta(AxisGrowth) <= -0.5 && newest.Scores[AxisGrowth] < 0 {
		warnings = append(warnings, "growth deteriorating rapidly")
	}
	if delta(AxisLiquidity) >= 0.5 && delta(AxisGrowth) >= 0.3 {
		warnings = append(warnings, "liquidity and growth both improving, possible risk-on transition forming")
	}

	if len(warnings) == 0 {
		return ""
	}
	return strings.Join(warnings, "; ")
}
