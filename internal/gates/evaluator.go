package gates

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/regimelab/macrogate/internal/regime"
)

// GateID identifies one of the five admission-control stages.
type GateID int

const (
	GateMacro GateID = iota
	GateMeso
	GateMicro
	GateRisk
	GateExecution
)

// AllGates lists the five gates in pipeline order. Evaluation is
// order-insensitive; the order only matters for reporting.
var AllGates = []GateID{GateMacro, GateMeso, GateMicro, GateRisk, GateExecution}

func (g GateID) String() string {
	switch g {
	case GateMacro:
		return "MACRO"
	case GateMeso:
		return "MESO"
	case GateMicro:
		return "MICRO"
	case GateRisk:
		return "RISK"
	case GateExecution:
		return "EXECUTION"
	default:
		return "?"
	}
}

func (g GateID) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

// GateStatus is the closed outcome set for a single gate.
type GateStatus int

const (
	StatusPass GateStatus = iota
	StatusWarn
	StatusFail
	StatusSkip
)

func (s GateStatus) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusWarn:
		return "WARN"
	case StatusFail:
		return "FAIL"
	default:
		return "SKIP"
	}
}

func (s GateStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// GateResult is one gate's verdict. Reasons is always non-empty: every
// branch, including a clean pass, appends at least one line. Failures and
// Warnings carry the blocking and advisory lines separately so aggregation
// never mixes them.
type GateResult struct {
	ID         GateID                 `json:"id"`
	Status     GateStatus             `json:"status"`
	Reasons    []string               `json:"reasons"`
	Failures   []string               `json:"failures,omitempty"`
	Warnings   []string               `json:"warnings,omitempty"`
	Inputs     map[string]interface{} `json:"inputs"`
	Confidence regime.Confidence      `json:"confidence"`
}

// Summary aggregates the five gate results. AllPass is true iff no gate
// failed; warnings never block on their own.
type Summary struct {
	Timestamp       time.Time         `json:"timestamp"`
	AllPass         bool              `json:"all_pass"`
	Gates           []GateResult      `json:"gates"`
	Confidence      regime.Confidence `json:"confidence"` // worst of the five
	BlockingReasons []string          `json:"blocking_reasons"`
	Warnings        []string          `json:"warnings"`
}

// Evaluator runs the five-stage gate pipeline against a regime snapshot and
// a trade candidate. It is stateless and safe for concurrent use.
type Evaluator struct {
	cfg *Config
}

// NewEvaluator creates a gate evaluator (nil config means defaults).
func NewEvaluator(cfg *Config) *Evaluator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Evaluator{cfg: cfg}
}

// Evaluate runs all five gates and aggregates the verdict. No gate can
// error: every failure mode is a FAIL/WARN status with a reason.
func (ev *Evaluator) Evaluate(snap *regime.Snapshot, trade *TradeContext) *Summary {
	results := []GateResult{
		ev.macroGate(snap, trade),
		ev.mesoGate(snap, trade),
		ev.microGate(trade),
		ev.riskGate(snap, trade),
		ev.executionGate(trade),
	}

	summary := summarize(time.Now().UTC(), results)

	log.Debug().
		Str("symbol", trade.Symbol).
		Bool("all_pass", summary.AllPass).
		Int("blocking", len(summary.BlockingReasons)).
		Int("warnings", len(summary.Warnings)).
		Msg("gate evaluation complete")

	return summary
}

// summarize folds gate results into a Summary. Split out so the aggregation
// invariants can be tested exhaustively over status combinations.
func summarize(ts time.Time, results []GateResult) *Summary {
	s := &Summary{
		Timestamp:  ts,
		AllPass:    true,
		Gates:      results,
		Confidence: regime.OK,
	}
	for _, r := range results {
		s.Confidence = regime.WorstConfidence(s.Confidence, r.Confidence)
		if r.Status == StatusFail {
			s.AllPass = false
		}
		// Fail and warn lines route to their own buckets even when one gate
		// produced both.
		for _, reason := range r.Failures {
			s.BlockingReasons = append(s.BlockingReasons, fmt.Sprintf("%s: %s", r.ID, reason))
		}
		for _, reason := range r.Warnings {
			s.Warnings = append(s.Warnings, fmt.Sprintf("%s: %s", r.ID, reason))
		}
	}
	return s
}

// gateBuilder accumulates reasons for one gate and resolves the final
// status: any fail → FAIL, else any warn → WARN, else PASS.
type gateBuilder struct {
	id         GateID
	confidence regime.Confidence
	fails      []string
	warns      []string
	notes      []string
	inputs     map[string]interface{}
}

func newGate(id GateID) *gateBuilder {
	return &gateBuilder{
		id:         id,
		confidence: regime.OK,
		inputs:     make(map[string]interface{}),
	}
}

func (g *gateBuilder) fail(format string, args ...interface{}) {
	g.fails = append(g.fails, fmt.Sprintf(format, args...))
}

func (g *gateBuilder) warn(format string, args ...interface{}) {
	g.warns = append(g.warns, fmt.Sprintf(format, args...))
}

func (g *gateBuilder) note(format string, args ...interface{}) {
	g.notes = append(g.notes, fmt.Sprintf(format, args...))
}

func (g *gateBuilder) input(key string, v interface{}) {
	g.inputs[key] = v
}

func (g *gateBuilder) result() GateResult {
	status := StatusPass
	reasons := append(append([]string{}, g.fails...), g.warns...)
	reasons = append(reasons, g.notes...)

	switch {
	case len(g.fails) > 0:
		status = StatusFail
	case len(g.warns) > 0:
		status = StatusWarn
	}
	if len(reasons) == 0 {
		reasons = []string{"all checks clear"}
	}

	return GateResult{
		ID:         g.id,
		Status:     status,
		Reasons:    reasons,
		Failures:   g.fails,
		Warnings:   g.warns,
		Inputs:     g.inputs,
		Confidence: g.confidence,
	}
}

func (g *gateBuilder) skip(reason string) GateResult {
	return GateResult{
		ID:         g.id,
		Status:     StatusSkip,
		Reasons:    []string{reason},
		Inputs:     g.inputs,
		Confidence: g.confidence,
	}
}

// macroGate blocks trades that fight the macro regime outright.
func (ev *Evaluator) macroGate(snap *regime.Snapshot, trade *TradeContext) GateResult {
	g := newGate(GateMacro)
	g.confidence = snap.Confidence
	g.input("regime", snap.Regime.String())
	g.input("regime_confidence", snap.Confidence.String())

	assetClass := strings.ToLower(trade.AssetClass)

	// Stagflation is dangerous but restricts longs through the meso
	// prohibitions; only these three regimes block outright here.
	switch snap.Regime {
	case regime.LiquidityDrain, regime.CreditStress, regime.Deflation:
		if trade.Side == Long && ev.cfg.isRiskOnAssetClass(assetClass) {
			g.fail("regime %s blocks new LONG %s exposure", snap.Regime, assetClass)
		}
	}

	if liq := snap.Axes[regime.AxisLiquidity]; liq.Direction == regime.StrongDown {
		g.input("liquidity_score", liq.Score)
		g.fail("liquidity axis at %.2f (strong down) — no new risk", liq.Score)
	}
	if credit := snap.Axes[regime.AxisCredit]; credit.Direction == regime.StrongDown {
		g.input("credit_score", credit.Score)
		g.fail("credit axis at %.2f (strong down) — no new risk", credit.Score)
	}

	if snap.Confidence == regime.Unavailable || snap.Confidence == regime.Suspect {
		g.warn("regime confidence is %s — classification may be unreliable", snap.Confidence)
	}

	if len(g.fails) == 0 && len(g.warns) == 0 {
		g.note("regime %s does not block %s %s", snap.Regime, trade.Side, assetClass)
	}
	return g.result()
}

// mesoGate checks the trade against active prohibitions and tilts. Matches
// warn rather than fail: prohibitions are advisory at this stage and the
// macro gate already blocks the outright dangerous cases.
func (ev *Evaluator) mesoGate(snap *regime.Snapshot, trade *TradeContext) GateResult {
	g := newGate(GateMeso)
	g.confidence = snap.Confidence
	assetClass := strings.ToLower(trade.AssetClass)
	g.input("asset_class", assetClass)

	if snap.Regime == regime.Unknown && len(snap.Prohibitions) == 0 && len(snap.Tilts) == 0 {
		return g.skip("no meso guidance available for an UNKNOWN regime")
	}

	for _, p := range snap.Prohibitions {
		switch p.Kind {
		case regime.CapSizingPercent:
			g.warn("sizing capped at %.0f%%: %s", p.Pct, p.Text)
		case regime.DisallowDirectionInAssetClass:
			if tradeMatchesProhibition(trade, p, assetClass) {
				g.warn("trade conflicts with active prohibition: %s", p.Text)
			}
		}
	}

	for _, t := range snap.Tilts {
		if tiltAligns(trade, t, assetClass) {
			g.note("aligned with tilt #%d: %s %s", t.Rank, t.Direction, t.Target)
		}
	}

	if len(g.warns) == 0 && len(g.notes) == 0 {
		g.note("no active prohibition touches %s %s", trade.Side, assetClass)
	}
	return g.result()
}

func tradeMatchesProhibition(trade *TradeContext, p regime.Prohibition, assetClass string) bool {
	sameDirection := (p.Direction == regime.TiltLong && trade.Side == Long) ||
		(p.Direction == regime.TiltShort && trade.Side == Short)
	return sameDirection && strings.EqualFold(p.AssetClass, assetClass)
}

func tiltAligns(trade *TradeContext, t regime.MesoTilt, assetClass string) bool {
	sameDirection := (t.Direction == regime.TiltLong && trade.Side == Long) ||
		(t.Direction == regime.TiltShort && trade.Side == Short)
	return sameDirection && strings.EqualFold(t.Target, assetClass)
}

// microGate checks the per-candidate signal quality facts supplied by the
// scoring collaborator.
func (ev *Evaluator) microGate(trade *TradeContext) GateResult {
	g := newGate(GateMicro)
	g.confidence = trade.Quality
	g.input("signal", trade.Signal)
	g.input("score", trade.Score)
	g.input("liquidity_score", trade.LiquidityScore)

	if strings.EqualFold(trade.Signal, "WAIT") {
		g.fail("signal is WAIT — no entry condition")
	}

	if rr, ok := trade.RiskReward(); ok {
		g.input("risk_reward", rr)
		if rr < ev.cfg.MinRiskRewardRatio {
			g.fail("risk:reward %.2f below minimum %.2f", rr, ev.cfg.MinRiskRewardRatio)
		}
	} else if trade.Entry != nil || trade.Stop != nil || trade.Target != nil {
		g.note("incomplete price levels — risk:reward not checked")
	}

	if trade.Quality == regime.Suspect || trade.Quality == regime.Stale {
		g.fail("data quality is %s", trade.Quality)
	}

	if trade.LiquidityScore < ev.cfg.MinLiquidityScore {
		g.fail("liquidity score %.0f below minimum %.0f", trade.LiquidityScore, ev.cfg.MinLiquidityScore)
	}

	if trade.Score < ev.cfg.WarnScore {
		g.warn("composite score %.0f below %.0f", trade.Score, ev.cfg.WarnScore)
	}

	if len(g.fails) == 0 && len(g.warns) == 0 {
		g.note("signal %s, score %.0f, liquidity %.0f all clear", trade.Signal, trade.Score, trade.LiquidityScore)
	}
	return g.result()
}

// riskGate enforces the portfolio risk caps.
func (ev *Evaluator) riskGate(snap *regime.Snapshot, trade *TradeContext) GateResult {
	g := newGate(GateRisk)
	g.input("account_risk_pct", trade.AccountRiskPercent)
	g.input("total_open_risk_pct", trade.TotalOpenRiskPercent)
	g.input("correlated_exposure_pct", trade.CorrelatedExposurePercent)

	if trade.AccountRiskPercent > ev.cfg.PerTradeRiskCapPercent {
		g.fail("per-trade risk %.2f%% exceeds cap %.2f%%", trade.AccountRiskPercent, ev.cfg.PerTradeRiskCapPercent)
	}
	if trade.TotalOpenRiskPercent > ev.cfg.TotalRiskCapPercent {
		g.fail("total open risk %.2f%% exceeds cap %.2f%%", trade.TotalOpenRiskPercent, ev.cfg.TotalRiskCapPercent)
	}
	if trade.CorrelatedExposurePercent > ev.cfg.CorrelatedExposureWarnPct {
		g.warn("correlated exposure %.2f%% above %.2f%%", trade.CorrelatedExposurePercent, ev.cfg.CorrelatedExposureWarnPct)
	}

	if pct, ok := snap.VolatilityPercentile(); ok {
		g.input("vix_percentile", pct)
		if pct >= ev.cfg.VolSizingWarnPercentile {
			g.warn("volatility at %dth percentile — halve position sizing", pct)
		}
	}

	if len(g.fails) == 0 && len(g.warns) == 0 {
		g.note("risk %.2f%%/%.2f%% within caps", trade.AccountRiskPercent, trade.TotalOpenRiskPercent)
	}
	return g.result()
}

// executionGate checks timing and cost conditions for the fill itself.
func (ev *Evaluator) executionGate(trade *TradeContext) GateResult {
	g := newGate(GateExecution)
	g.input("utc_hour", trade.UTCHour)
	g.input("spread_cost", trade.SpreadCost)

	if ev.cfg.isRolloverHour(trade.UTCHour) {
		g.warn("UTC hour %02d is a low-liquidity/rollover window", trade.UTCHour)
	}
	if trade.NewsUpcoming {
		g.warn("high-impact news upcoming — spreads may gap")
	}

	if move, ok := trade.TargetMove(); ok && move > 0 {
		ratio := trade.SpreadCost / move
		g.input("spread_cost_ratio", ratio)
		if ratio > ev.cfg.MaxSpreadCostRatio {
			g.fail("spread cost is %.0f%% of the target move (max %.0f%%)",
				ratio*100, ev.cfg.MaxSpreadCostRatio*100)
		}
	} else {
		g.note("no target move available — spread cost not checked")
	}

	if len(g.fails) == 0 && len(g.warns) == 0 {
		g.note("execution window clear at UTC hour %02d", trade.UTCHour)
	}
	return g.result()
}

// GetSummary returns a one-line gate verdict.
func (s *Summary) GetSummary() string {
	if s.AllPass {
		return fmt.Sprintf("CLEARED — %d warnings", len(s.Warnings))
	}
	return fmt.Sprintf("BLOCKED — %s", s.BlockingReasons[0])
}

// DetailedReport renders all five gate results.
func (s *Summary) DetailedReport() string {
	var b strings.Builder
	verdict := "BLOCKED"
	if s.AllPass {
		verdict = "CLEARED"
	}
	fmt.Fprintf(&b, "Gate Evaluation: %s | Confidence: %s\n\n", verdict, s.Confidence)

	for _, r := range s.Gates {
		fmt.Fprintf(&b, "[%s] %s\n", r.Status, r.ID)
		for _, reason := range r.Reasons {
			fmt.Fprintf(&b, "    %s\n", reason)
		}
	}

	if len(s.BlockingReasons) > 0 {
		b.WriteString("\nBlocking:\n")
		for i, reason := range s.BlockingReasons {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, reason)
		}
	}
	if len(s.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for i, w := range s.Warnings {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, w)
		}
	}
	return b.String()
}
