package regime

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/regimelab/macrogate/internal/macro"
)

// Snapshot is the engine's primary output: one regime classification with
// everything derived from it. Constructed fresh on every call, immutable
// once returned.
type Snapshot struct {
	Timestamp         time.Time          `json:"timestamp"`
	Regime            RegimeType         `json:"regime"`
	Confidence        Confidence         `json:"confidence"`
	DominantDrivers   []string           `json:"dominant_drivers"`
	Axes              map[Axis]AxisScore `json:"axes"`
	Alerts            []Alert            `json:"alerts"`
	Tilts             []MesoTilt         `json:"tilts"`
	Prohibitions      []Prohibition      `json:"prohibitions"`
	ProhibitionTexts  []string           `json:"prohibition_texts"`
	TransitionWarning string             `json:"transition_warning,omitempty"`
	Scenario          *ScenarioState     `json:"scenario,omitempty"`
	LastConfirmed     RegimeType         `json:"last_confirmed"`
	LastConfirmedAt   time.Time          `json:"last_confirmed_at"`
}

// Engine owns the scorer, the transition history, the scenario sequence,
// and the last-confirmed regime record. Snapshot computation is pure except
// for those explicitly owned pieces of state, so an Engine is safe for
// concurrent callers.
type Engine struct {
	cfg       *Config
	scorer    *Scorer
	history   *History
	scenarios *ScenarioEngine

	mu              sync.Mutex
	lastConfirmed   RegimeType
	lastConfirmedAt time.Time
}

// NewEngine creates an engine with the given configuration (nil means
// defaults).
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{
		cfg:       cfg,
		scorer:    NewScorer(cfg),
		history:   NewHistory(cfg.HistoryMaxEntries, time.Duration(cfg.HistoryWindowHours*float64(time.Hour))),
		scenarios: NewScenarioEngine(),
	}
}

// History exposes the engine's transition buffer, mainly for tests and
// callers that want to pre-seed it.
func (e *Engine) History() *History { return e.history }

// Snapshot runs the full pipeline: score all six axes, classify, derive
// advisories, record into the transition history, and assemble the result.
func (e *Engine) Snapshot(in *macro.Inputs) *Snapshot {
	return e.snapshotAt(in, time.Now().UTC())
}

func (e *Engine) snapshotAt(in *macro.Inputs, now time.Time) *Snapshot {
	axes := e.scorer.ScoreAll(in, now)
	c := Classify(axes)

	prohibitions := GenerateProhibitions(c.Regime, axes)
	scenario := e.scenarios.Determine(in)

	e.history.Record(now, c.Regime, axes)
	warning := e.history.DetectTransition(now)

	e.mu.Lock()
	lastConfirmed, lastConfirmedAt := e.lastConfirmed, e.lastConfirmedAt
	e.lastConfirmed, e.lastConfirmedAt = c.Regime, now
	e.mu.Unlock()

	snap := &Snapshot{
		Timestamp:         now,
		Regime:            c.Regime,
		Confidence:        c.Confidence,
		DominantDrivers:   c.Drivers,
		Axes:              axes,
		Alerts:            GenerateAlerts(axes, c.Regime),
		Tilts:             GenerateTilts(c.Regime, axes),
		Prohibitions:      prohibitions,
		ProhibitionTexts:  ProhibitionTexts(prohibitions),
		TransitionWarning: warning,
		Scenario:          &scenario,
		LastConfirmed:     lastConfirmed,
		LastConfirmedAt:   lastConfirmedAt,
	}

	log.Debug().
		Str("regime", snap.Regime.String()).
		Str("confidence", snap.Confidence.String()).
		Int("alerts", len(snap.Alerts)).
		Bool("transition_warning", warning != "").
		Msg("regime snapshot computed")

	return snap
}

// VolatilityPercentile returns the volatility axis percentile bucket, or
// (0, false) when no VIX reading backed the score.
func (s *Snapshot) VolatilityPercentile() (int, bool) {
	pct, ok := s.Axes[AxisVolatility].Inputs["vix_percentile"]
	return int(pct), ok
}

// Summary returns a one-line description of the snapshot.
func (s *Snapshot) Summary() string {
	return fmt.Sprintf("%s (%s) — %s", s.Regime, s.Confidence, strings.Join(s.DominantDrivers, "; "))
}

// DetailedReport renders the full snapshot as a readable multi-line report.
func (s *Snapshot) DetailedReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Regime: %s | Confidence: %s | %s\n", s.Regime, s.Confidence, s.Timestamp.Format(time.RFC3339))
	for _, d := range s.DominantDrivers {
		fmt.Fprintf(&b, "  driver: %s\n", d)
	}

	b.WriteString("\nAxes:\n")
	for _, axis := range AllAxes {
		a := s.Axes[axis]
		fmt.Fprintf(&b, "  %-10s %s %+.2f (%s)\n", a.Name, a.Direction, a.Score, a.Confidence)
	}

	if len(s.Tilts) > 0 {
		b.WriteString("\nTilts:\n")
		for _, t := range s.Tilts {
			fmt.Fprintf(&b, "  %d. %s %s — %s\n", t.Rank, t.Direction, t.Target, t.Rationale)
		}
	}

	if len(s.ProhibitionTexts) > 0 {
		b.WriteString("\nProhibitions:\n")
		for _, p := range s.ProhibitionTexts {
			fmt.Fprintf(&b, "  - %s\n", p)
		}
	}

	if len(s.Alerts) > 0 {
		b.WriteString("\nAlerts:\n")
		for _, a := range s.Alerts {
			fmt.Fprintf(&b, "  [%s] %s: %s → %s\n", a.Severity, a.Axis, a.Message, a.Action)
		}
	}

	if s.TransitionWarning != "" {
		fmt.Fprintf(&b, "\nTransition warning: %s\n", s.TransitionWarning)
	}

	if s.Scenario != nil {
		fmt.Fprintf(&b, "\nScenario: %s (%.0f%%), next likely %s\n",
			s.Scenario.Scenario, s.Scenario.Probability, s.Scenario.Next)
	}

	return b.String()
}
