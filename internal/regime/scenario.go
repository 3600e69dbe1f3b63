package regime

import (
	"sync"

	"github.com/regimelab/macrogate/internal/macro"
)

// ScenarioType is the coarse macro scenario set, scored independently of the
// axis-based regime classifier as a cross-check.
type ScenarioType int

const (
	ScenarioUncertain ScenarioType = iota
	ScenarioDisinflation
	ScenarioReacceleration
	ScenarioGoldilocks
	ScenarioStagflation
	ScenarioRiskOff
	ScenarioRecovery
)

func (s ScenarioType) String() string {
	switch s {
	case ScenarioDisinflation:
		return "DISINFLATION"
	case ScenarioReacceleration:
		return "REACCELERATION"
	case ScenarioGoldilocks:
		return "GOLDILOCKS"
	case ScenarioStagflation:
		return "STAGFLATION"
	case ScenarioRiskOff:
		return "RISK_OFF"
	case ScenarioRecovery:
		return "RECOVERY"
	default:
		return "UNCERTAIN"
	}
}

func (s ScenarioType) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ScenarioState is the scenario engine output: the best-scoring scenario,
// its probability (0-100), the recent distinct-scenario sequence, and a
// naive next-scenario prediction.
type ScenarioState struct {
	Scenario    ScenarioType   `json:"scenario"`
	Probability float64        `json:"probability"`
	Sequence    []ScenarioType `json:"sequence"`
	Next        ScenarioType   `json:"next"`
}

// ScenarioEngine scores the scenario set from macro inputs and keeps the
// last 10 distinct scenarios as a sequence. The sequence is the only state;
// it is mutex-guarded like the transition history.
type ScenarioEngine struct {
	mu       sync.Mutex
	sequence []ScenarioType
}

// NewScenarioEngine creates an empty scenario engine.
func NewScenarioEngine() *ScenarioEngine {
	return &ScenarioEngine{}
}

const scenarioSequenceMax = 10

// Determine scores every scenario, appends the winner to the sequence when
// it changed, and predicts the next scenario from a fixed transition map.
func (e *ScenarioEngine) Determine(in *macro.Inputs) ScenarioState {
	scores := map[ScenarioType]float64{
		ScenarioDisinflation:   scoreDisinflation(in),
		ScenarioReacceleration: scoreReacceleration(in),
		ScenarioGoldilocks:     scoreGoldilocks(in),
		ScenarioStagflation:    scoreStagflation(in),
		ScenarioRiskOff:        scoreScenarioRiskOff(in),
	}

	best := ScenarioUncertain
	bestScore := 0.0
	// Deterministic iteration: ties break toward the lower enum value.
	for _, s := range []ScenarioType{ScenarioDisinflation, ScenarioReacceleration,
		ScenarioGoldilocks, ScenarioStagflation, ScenarioRiskOff} {
		if scores[s] > bestScore {
			best, bestScore = s, scores[s]
		}
	}

	e.mu.Lock()
	if len(e.sequence) == 0 || e.sequence[len(e.sequence)-1] != best {
		e.sequence = append(e.sequence, best)
		if len(e.sequence) > scenarioSequenceMax {
			e.sequence = e.sequence[len(e.sequence)-scenarioSequenceMax:]
		}
	}
	seq := make([]ScenarioType, len(e.sequence))
	copy(seq, e.sequence)
	e.mu.Unlock()

	return ScenarioState{
		Scenario:    best,
		Probability: bestScore,
		Sequence:    seq,
		Next:        predictNext(best),
	}
}

func scoreDisinflation(in *macro.Inputs) float64 {
	score := 50.0
	if in.CPIYoY != nil && in.Breakeven5Y != nil && *in.Breakeven5Y < *in.CPIYoY {
		score += 25
	}
	if in.RealGDPYoY != nil && *in.RealGDPYoY > 1 {
		score += 15
	}
	return min100(score)
}

func scoreReacceleration(in *macro.Inputs) float64 {
	score := 40.0
	if in.RealGDPYoY != nil {
		switch {
		case *in.RealGDPYoY > 2.5:
			score += 30
		case *in.RealGDPYoY > 2:
			score += 15
		}
	}
	return min100(score)
}

func scoreGoldilocks(in *macro.Inputs) float64 {
	score := 40.0
	if in.CPIYoY != nil && in.RealGDPYoY != nil {
		switch {
		case *in.CPIYoY > 1.5 && *in.CPIYoY < 2.5 && *in.RealGDPYoY > 2:
			score += 40
		case *in.CPIYoY < 3 && *in.RealGDPYoY > 1.5:
			score += 20
		}
	}
	return min100(score)
}

func scoreStagflation(in *macro.Inputs) float64 {
	score := 30.0
	if in.CPIYoY != nil && in.RealGDPYoY != nil {
		switch {
		case *in.CPIYoY > 4 && *in.RealGDPYoY < 1:
			score += 50
		case *in.CPIYoY > 3 && *in.RealGDPYoY < 1.5:
			score += 25
		}
	}
	return min100(score)
}

func scoreScenarioRiskOff(in *macro.Inputs) float64 {
	score := 30.0
	if in.HYSpread != nil && *in.HYSpread > 5.0 {
		score += 30
	}
	if in.VIX != nil && *in.VIX > 30 {
		score += 20
	}
	return min100(score)
}

// predictNext maps the current scenario to its most common successor.
func predictNext(current ScenarioType) ScenarioType {
	switch current {
	case ScenarioDisinflation:
		return ScenarioGoldilocks
	case ScenarioReacceleration:
		return ScenarioDisinflation
	case ScenarioGoldilocks:
		return ScenarioGoldilocks
	case ScenarioStagflation:
		return ScenarioRiskOff
	case ScenarioRiskOff:
		return ScenarioRecovery
	case ScenarioRecovery:
		return ScenarioGoldilocks
	default:
		return ScenarioUncertain
	}
}

func min100(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}
