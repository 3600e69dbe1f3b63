package regime

import "fmt"

// TiltDirection is the directional bias of a meso tilt.
type TiltDirection int

const (
	TiltLong TiltDirection = iota
	TiltShort
	TiltRelative
)

func (d TiltDirection) String() string {
	switch d {
	case TiltLong:
		return "LONG"
	case TiltShort:
		return "SHORT"
	default:
		return "RELATIVE"
	}
}

func (d TiltDirection) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// MesoTilt is one ranked, regime-derived directional bias for an asset group.
type MesoTilt struct {
	Rank       int           `json:"rank"`
	Direction  TiltDirection `json:"direction"`
	Target     string        `json:"target"`
	Rationale  string        `json:"rationale"`
	Confidence Confidence    `json:"confidence"`
}

// ProhibitionKind tags the structured prohibition predicates. Prohibitions
// used to be free-text sentences matched by substring downstream; they are
// structured here so the Meso gate can evaluate them directly.
type ProhibitionKind int

const (
	DisallowDirectionInAssetClass ProhibitionKind = iota
	CapSizingPercent
)

func (k ProhibitionKind) String() string {
	if k == CapSizingPercent {
		return "CAP_SIZING_PERCENT"
	}
	return "DISALLOW_DIRECTION_IN_ASSET_CLASS"
}

func (k ProhibitionKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Prohibition is a structured trading restriction derived from the regime.
// Text is the display form carried on the snapshot.
type Prohibition struct {
	Kind       ProhibitionKind `json:"kind"`
	Direction  TiltDirection   `json:"direction,omitempty"`
	AssetClass string          `json:"asset_class,omitempty"`
	Pct        float64         `json:"pct,omitempty"`
	Text       string          `json:"text"`
}

// AlertSeverity grades regime alerts.
type AlertSeverity int

const (
	SeverityInfo AlertSeverity = iota
	SeverityWarning
	SeverityCritical
)

func (s AlertSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityWarning:
		return "WARNING"
	default:
		return "INFO"
	}
}

func (s AlertSeverity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Alert is a derived advisory message; SystemAxis marks alerts about the
// engine's own data health rather than a single axis.
type Alert struct {
	Severity AlertSeverity `json:"severity"`
	Axis     string        `json:"axis"` // axis id or "SYSTEM"
	Message  string        `json:"message"`
	Action   string        `json:"action"`
}

// SystemAxis is the originating-axis label for engine-level alerts.
const SystemAxis = "SYSTEM"

func disallowLong(assetClass, why string) Prohibition {
	return Prohibition{
		Kind:       DisallowDirectionInAssetClass,
		Direction:  TiltLong,
		AssetClass: assetClass,
		Text:       fmt.Sprintf("no new LONG %s: %s", assetClass, why),
	}
}

// GenerateTilts returns the fixed, regime-keyed ranked bias list. When the
// dollar axis is at a strong-up extreme, any tilt that shorts the dollar
// gets a caution appended to its rationale.
func GenerateTilts(regime RegimeType, axes map[Axis]AxisScore) []MesoTilt {
	conf := WorstConfidence(axes[AxisGrowth].Confidence, axes[AxisInflation].Confidence,
		axes[AxisLiquidity].Confidence, axes[AxisCredit].Confidence)

	var tilts []MesoTilt
	switch regime {
	case Goldilocks:
		tilts = []MesoTilt{
			{Rank: 1, Direction: TiltLong, Target: "equities", Rationale: "growth with contained inflation favors risk assets"},
			{Rank: 2, Direction: TiltLong, Target: "credit", Rationale: "benign defaults, carry is paid to hold"},
			{Rank: 3, Direction: TiltShort, Target: "volatility", Rationale: "calm macro compresses implied vol"},
		}
	case Reflation:
		tilts = []MesoTilt{
			{Rank: 1, Direction: TiltLong, Target: "commodities", Rationale: "rising growth and inflation lift real assets"},
			{Rank: 2, Direction: TiltLong, Target: "cyclical equities", Rationale: "cyclicals lead when nominal growth accelerates"},
			{Rank: 3, Direction: TiltShort, Target: "bonds", Rationale: "duration suffers as yields reprice higher"},
		}
	case Stagflation:
		tilts = []MesoTilt{
			{Rank: 1, Direction: TiltLong, Target: "gold", Rationale: "negative real rates with falling growth favor gold"},
			{Rank: 2, Direction: TiltLong, Target: "USD", Rationale: "relative safety bid while growth rolls over"},
			{Rank: 3, Direction: TiltShort, Target: "risk assets", Rationale: "margin compression hits equities and crypto"},
		}
	case Deflation:
		tilts = []MesoTilt{
			{Rank: 1, Direction: TiltLong, Target: "long-duration bonds", Rationale: "falling growth and inflation reward duration"},
			{Rank: 2, Direction: TiltLong, Target: "USD", Rationale: "cash outperforms when prices fall"},
			{Rank: 3, Direction: TiltShort, Target: "commodities", Rationale: "demand destruction sinks real assets"},
		}
	case LiquidityDriven:
		tilts = []MesoTilt{
			{Rank: 1, Direction: TiltLong, Target: "crypto", Rationale: "excess liquidity chases the highest-beta assets first"},
			{Rank: 2, Direction: TiltLong, Target: "equities", Rationale: "multiple expansion while liquidity floods in"},
			{Rank: 3, Direction: TiltShort, Target: "USD", Rationale: "liquidity expansion debases the funding currency"},
		}
	case LiquidityDrain:
		tilts = []MesoTilt{
			{Rank: 1, Direction: TiltLong, Target: "cash", Rationale: "stay liquid while the tide goes out"},
			{Rank: 2, Direction: TiltShort, Target: "risk assets", Rationale: "drained liquidity sells beta indiscriminately"},
			{Rank: 3, Direction: TiltLong, Target: "USD", Rationale: "dollar shortage bids the funding currency"},
		}
	case CreditStress:
		tilts = []MesoTilt{
			{Rank: 1, Direction: TiltLong, Target: "treasuries", Rationale: "flight to quality into sovereigns"},
			{Rank: 2, Direction: TiltShort, Target: "credit", Rationale: "spreads widen faster than carry accrues"},
			{Rank: 3, Direction: TiltLong, Target: "USD", Rationale: "deleveraging is a dollar bid"},
		}
	case RiskOn:
		tilts = []MesoTilt{
			{Rank: 1, Direction: TiltLong, Target: "equities", Rationale: "broad risk appetite supports beta"},
			{Rank: 2, Direction: TiltRelative, Target: "high-beta over defensives", Rationale: "prefer beta while the wind blows"},
		}
	case RiskOff:
		tilts = []MesoTilt{
			{Rank: 1, Direction: TiltLong, Target: "defensives", Rationale: "quality holds up when appetite fades"},
			{Rank: 2, Direction: TiltLong, Target: "USD", Rationale: "safe-haven bid for the dollar"},
			{Rank: 3, Direction: TiltShort, Target: "high-beta", Rationale: "beta gets sold first in risk-off"},
		}
	default:
		return nil
	}

	dollarSurge := axes[AxisDollar].Direction == StrongUp
	for i := range tilts {
		tilts[i].Confidence = conf
		if dollarSurge && tilts[i].Direction == TiltShort && tilts[i].Target == "USD" {
			tilts[i].Rationale += " (caution: dollar axis is at a strong-up extreme)"
		}
	}
	return tilts
}

// GenerateProhibitions returns the structured trading restrictions active
// under the given regime and axis readings.
func GenerateProhibitions(regime RegimeType, axes map[Axis]AxisScore) []Prohibition {
	var out []Prohibition

	vol := axes[AxisVolatility]
	if vol.Direction == StrongUp || vol.Score > 1.0 {
		out = append(out, Prohibition{
			Kind: CapSizingPercent,
			Pct:  50,
			Text: "cap new risk, max 50% sizing: volatility regime is elevated",
		})
	}

	switch regime {
	case Stagflation:
		out = append(out,
			disallowLong("equities", "stagflation compresses margins"),
			disallowLong("crypto", "no liquidity tailwind for high beta"))
	case Deflation:
		out = append(out,
			disallowLong("commodities", "deflation is demand destruction"),
			disallowLong("equities", "earnings deflate with prices"))
	case CreditStress:
		out = append(out,
			disallowLong("credit", "spreads are widening"),
			disallowLong("crypto", "credit stress drains speculative liquidity"))
	case LiquidityDrain:
		out = append(out,
			disallowLong("crypto", "highest-beta assets fall first in a drain"),
			disallowLong("equities", "no marginal buyer while liquidity exits"))
	}

	return out
}

// ProhibitionTexts flattens prohibitions to their display strings for the
// snapshot.
func ProhibitionTexts(ps []Prohibition) []string {
	if len(ps) == 0 {
		return nil
	}
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Text
	}
	return out
}

// GenerateAlerts derives the alert list from axis readings and the regime.
func GenerateAlerts(axes map[Axis]AxisScore, regime RegimeType) []Alert {
	var alerts []Alert

	liq := axes[AxisLiquidity]
	switch liq.Direction {
	case StrongDown:
		alerts = append(alerts, Alert{
			Severity: SeverityCritical,
			Axis:     AxisLiquidity.String(),
			Message:  fmt.Sprintf("liquidity draining hard (score %.2f)", liq.Score),
			Action:   "cut gross exposure, no new risk",
		})
	case Down:
		alerts = append(alerts, Alert{
			Severity: SeverityWarning,
			Axis:     AxisLiquidity.String(),
			Message:  fmt.Sprintf("liquidity deteriorating (score %.2f)", liq.Score),
			Action:   "tighten stops, reduce position sizes",
		})
	}

	credit := axes[AxisCredit]
	if credit.Direction == StrongDown {
		alerts = append(alerts, Alert{
			Severity: SeverityCritical,
			Axis:     AxisCredit.String(),
			Message:  fmt.Sprintf("credit spreads blowing out (score %.2f)", credit.Score),
			Action:   "exit credit-sensitive positions",
		})
	}

	vol := axes[AxisVolatility]
	if pct, ok := vol.Inputs["vix_percentile"]; ok {
		if pct >= 80 {
			alerts = append(alerts, Alert{
				Severity: SeverityWarning,
				Axis:     AxisVolatility.String(),
				Message:  fmt.Sprintf("volatility at the %.0fth percentile", pct),
				Action:   "halve position sizing",
			})
		} else if pct <= 20 {
			alerts = append(alerts, Alert{
				Severity: SeverityInfo,
				Axis:     AxisVolatility.String(),
				Message:  fmt.Sprintf("volatility at the %.0fth percentile", pct),
				Action:   "cheap optionality, consider hedges",
			})
		}
	}

	degraded := 0
	for _, axis := range AllAxes {
		if c := axes[axis].Confidence; c == Unavailable || c == Suspect {
			degraded++
		}
	}
	if degraded >= 3 {
		alerts = append(alerts, Alert{
			Severity: SeverityWarning,
			Axis:     SystemAxis,
			Message:  fmt.Sprintf("%d of 6 axes running on missing or suspect data", degraded),
			Action:   "treat regime classification as low confidence",
		})
	}

	return alerts
}
