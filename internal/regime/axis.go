package regime

import "time"

// Axis identifies one of the six macro/market dimensions.
type Axis int

const (
	AxisGrowth Axis = iota
	AxisInflation
	AxisLiquidity
	AxisCredit
	AxisDollar
	AxisVolatility
)

// AllAxes lists every axis in canonical order.
var AllAxes = []Axis{AxisGrowth, AxisInflation, AxisLiquidity, AxisCredit, AxisDollar, AxisVolatility}

func (a Axis) String() string {
	switch a {
	case AxisGrowth:
		return "G"
	case AxisInflation:
		return "I"
	case AxisLiquidity:
		return "L"
	case AxisCredit:
		return "C"
	case AxisDollar:
		return "D"
	case AxisVolatility:
		return "V"
	default:
		return "?"
	}
}

// MarshalText lets axes serve as readable JSON map keys.
func (a Axis) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// Name returns the display name for the axis.
func (a Axis) Name() string {
	switch a {
	case AxisGrowth:
		return "Growth"
	case AxisInflation:
		return "Inflation"
	case AxisLiquidity:
		return "Liquidity"
	case AxisCredit:
		return "Credit"
	case AxisDollar:
		return "Dollar"
	case AxisVolatility:
		return "Volatility"
	default:
		return "Unknown"
	}
}

// Direction is the categorical reading derived from the numeric axis score.
type Direction int

const (
	StrongDown Direction = iota
	Down
	Flat
	Up
	StrongUp
)

func (d Direction) String() string {
	switch d {
	case StrongUp:
		return "↑↑"
	case Up:
		return "↑"
	case Down:
		return "↓"
	case StrongDown:
		return "↓↓"
	default:
		return "→"
	}
}

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Confidence grades how much real (vs proxied/stale) data backed a score.
// Ordered worst to best.
type Confidence int

const (
	Unavailable Confidence = iota
	Suspect
	Stale
	Partial
	OK
)

func (c Confidence) String() string {
	switch c {
	case OK:
		return "OK"
	case Partial:
		return "PARTIAL"
	case Stale:
		return "STALE"
	case Suspect:
		return "SUSPECT"
	default:
		return "UNAVAILABLE"
	}
}

func (c Confidence) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// ParseConfidence maps the wire label back to a Confidence value.
func ParseConfidence(s string) (Confidence, bool) {
	switch s {
	case "OK":
		return OK, true
	case "PARTIAL":
		return Partial, true
	case "STALE":
		return Stale, true
	case "SUSPECT":
		return Suspect, true
	case "UNAVAILABLE":
		return Unavailable, true
	default:
		return Unavailable, false
	}
}

// WorstConfidence returns the minimum confidence under the fixed
// UNAVAILABLE < SUSPECT < STALE < PARTIAL < OK ordering. The worst of an
// empty set is Unavailable.
func WorstConfidence(cs ...Confidence) Confidence {
	worst := OK
	if len(cs) == 0 {
		return Unavailable
	}
	for _, c := range cs {
		if c < worst {
			worst = c
		}
	}
	return worst
}

// AxisScore is one axis reading: a clamped numeric score, its categorical
// direction, the confidence grade, and the trail of what went into it.
type AxisScore struct {
	Axis       Axis               `json:"axis"`
	Name       string             `json:"name"`
	Score      float64            `json:"score"` // clamped to [-2.0, 2.0]
	Direction  Direction          `json:"direction"`
	Confidence Confidence         `json:"confidence"`
	Reasons    []string           `json:"reasons"`
	Inputs     map[string]float64 `json:"inputs"` // raw values actually used
	Timestamp  time.Time          `json:"timestamp"`
}

// DirectionThresholds are the fixed cut points mapping score to direction.
type DirectionThresholds struct {
	StrongUp   float64 `yaml:"strong_up"`   // ≥ → ↑↑
	Up         float64 `yaml:"up"`          // ≥ → ↑
	Down       float64 `yaml:"down"`        // ≤ → ↓
	StrongDown float64 `yaml:"strong_down"` // ≤ → ↓↓
}

// DirectionFor maps a score to its direction. Strong bands win over weak
// ones; anything between Down and Up is Flat.
func (t DirectionThresholds) DirectionFor(score float64) Direction {
	switch {
	case score >= t.StrongUp:
		return StrongUp
	case score >= t.Up:
		return Up
	case score <= t.StrongDown:
		return StrongDown
	case score <= t.Down:
		return Down
	default:
		return Flat
	}
}

func clampScore(v float64) float64 {
	if v > 2.0 {
		return 2.0
	}
	if v < -2.0 {
		return -2.0
	}
	return v
}
