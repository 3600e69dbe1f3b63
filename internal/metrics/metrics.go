package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/regimelab/macrogate/internal/gates"
	"github.com/regimelab/macrogate/internal/regime"
)

// Registry holds the prometheus collectors for the regime/gate pipeline.
// The core packages stay pure; callers record results here after each
// computation and hand the underlying registry to whatever serves it.
type Registry struct {
	reg *prometheus.Registry

	RegimeClassifications *prometheus.CounterVec
	ActiveRegime          *prometheus.GaugeVec
	AxisScores            *prometheus.GaugeVec
	AxisConfidence        *prometheus.GaugeVec
	TransitionWarnings    prometheus.Counter
	AlertsEmitted         *prometheus.CounterVec

	GateEvaluations *prometheus.CounterVec
	TradesBlocked   prometheus.Counter
	TradesCleared   prometheus.Counter
}

// NewRegistry creates and registers all pipeline collectors on a fresh
// prometheus registry.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		RegimeClassifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macrogate_regime_classifications_total",
				Help: "Total regime classifications by resulting regime",
			},
			[]string{"regime"},
		),
		ActiveRegime: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macrogate_active_regime",
				Help: "1 for the currently classified regime, 0 for all others",
			},
			[]string{"regime"},
		),
		AxisScores: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macrogate_axis_score",
				Help: "Latest axis score in [-2, 2]",
			},
			[]string{"axis"},
		),
		AxisConfidence: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macrogate_axis_confidence",
				Help: "Latest axis confidence rank (0=UNAVAILABLE..4=OK)",
			},
			[]string{"axis"},
		),
		TransitionWarnings: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "macrogate_transition_warnings_total",
				Help: "Snapshots that carried a regime transition warning",
			},
		),
		AlertsEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macrogate_alerts_total",
				Help: "Regime alerts emitted by severity",
			},
			[]string{"severity"},
		),
		GateEvaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macrogate_gate_results_total",
				Help: "Individual gate results by gate and status",
			},
			[]string{"gate", "status"},
		),
		TradesBlocked: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "macrogate_trades_blocked_total",
				Help: "Gate summaries that blocked the trade",
			},
		),
		TradesCleared: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "macrogate_trades_cleared_total",
				Help: "Gate summaries that cleared the trade",
			},
		),
	}

	r.reg.MustRegister(
		r.RegimeClassifications, r.ActiveRegime, r.AxisScores, r.AxisConfidence,
		r.TransitionWarnings, r.AlertsEmitted,
		r.GateEvaluations, r.TradesBlocked, r.TradesCleared,
	)
	return r
}

// Prometheus returns the underlying registry for exposition by a
// collaborator.
func (r *Registry) Prometheus() *prometheus.Registry { return r.reg }

// RecordSnapshot updates the regime-side collectors from a snapshot.
func (r *Registry) RecordSnapshot(snap *regime.Snapshot) {
	r.RegimeClassifications.WithLabelValues(snap.Regime.String()).Inc()

	for rt := regime.Unknown; rt <= regime.RiskOff; rt++ {
		v := 0.0
		if rt == snap.Regime {
			v = 1.0
		}
		r.ActiveRegime.WithLabelValues(rt.String()).Set(v)
	}

	for _, axis := range regime.AllAxes {
		score := snap.Axes[axis]
		r.AxisScores.WithLabelValues(axis.String()).Set(score.Score)
		r.AxisConfidence.WithLabelValues(axis.String()).Set(float64(score.Confidence))
	}

	if snap.TransitionWarning != "" {
		r.TransitionWarnings.Inc()
	}
	for _, a := range snap.Alerts {
		r.AlertsEmitted.WithLabelValues(a.Severity.String()).Inc()
	}
}

// RecordGateSummary updates the gate-side collectors from a summary.
func (r *Registry) RecordGateSummary(s *gates.Summary) {
	for _, g := range s.Gates {
		r.GateEvaluations.WithLabelValues(g.ID.String(), g.Status.String()).Inc()
	}
	if s.AllPass {
		r.TradesCleared.Inc()
	} else {
		r.TradesBlocked.Inc()
	}
}
