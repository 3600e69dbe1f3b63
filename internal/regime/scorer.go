package regime

import (
	"fmt"
	"time"
)

// axisAccumulator builds one AxisScore from a weighted sum of indicator
// contributions, tracking how many were real series vs market proxies so
// confidence can be graded afterwards.
type axisAccumulator struct {
	cfg         *Config
	weightedSum float64
	totalWeight float64
	realCount   int
	proxyCount  int
	reasons     []string
	used        map[string]float64
}

func newAxisAccumulator(cfg *Config) *axisAccumulator {
	return &axisAccumulator{
		cfg:  cfg,
		used: make(map[string]float64),
	}
}

// linearScore maps a raw indicator value onto [-2, 2] linearly around an
// economically meaningful center. scale is the raw move worth one point.
func linearScore(value, center, scale float64) float64 {
	return clampScore((value - center) / scale)
}

func (a *axisAccumulator) addReal(name string, raw, mapped, weight float64, reason string) {
	a.weightedSum += mapped * weight
	a.totalWeight += weight
	a.realCount++
	a.used[name] = raw
	a.reasons = append(a.reasons, reason)
}

func (a *axisAccumulator) addProxy(name string, raw, mapped, weight float64, reason string) {
	a.weightedSum += mapped * weight
	a.totalWeight += weight
	a.proxyCount++
	a.used[name] = raw
	a.reasons = append(a.reasons, reason+" (proxy)")
}

// needsProxies reports whether too few real series were available and the
// lower-weight market proxies should fold in.
func (a *axisAccumulator) needsProxies() bool {
	return a.realCount < a.cfg.MinRealIndicators
}

func (a *axisAccumulator) confidence() Confidence {
	switch {
	case a.realCount >= 3:
		return OK
	case a.realCount >= 1:
		return Partial
	case a.proxyCount >= 1:
		return Stale
	default:
		return Unavailable
	}
}

func (a *axisAccumulator) finish(axis Axis, now time.Time) AxisScore {
	score := 0.0
	if a.totalWeight > 0 {
		score = clampScore(a.weightedSum / a.totalWeight)
	}

	reasons := a.reasons
	if len(reasons) == 0 {
		reasons = []string{fmt.Sprintf("no %s data available", axis.Name())}
	}

	return AxisScore{
		Axis:       axis,
		Name:       axis.Name(),
		Score:      score,
		Direction:  a.cfg.Thresholds.DirectionFor(score),
		Confidence: a.confidence(),
		Reasons:    reasons,
		Inputs:     a.used,
		Timestamp:  now,
	}
}
