package regime

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectionThresholds_BoundaryValues(t *testing.T) {
	thresholds := DefaultConfig().Thresholds

	tests := []struct {
		score float64
		want  Direction
	}{
		{2.0, StrongUp},
		{1.0, StrongUp},
		{0.999999, Up},
		{0.3, Up},
		{0.299999, Flat},
		{0.0, Flat},
		{-0.299999, Flat},
		{-0.3, Down},
		{-0.999999, Down},
		{-1.0, StrongDown},
		{-2.0, StrongDown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, thresholds.DirectionFor(tt.score),
			"score %f should map to %s", tt.score, tt.want)
	}
}

func TestWorstConfidence_Ordering(t *testing.T) {
	assert.Equal(t, Unavailable, WorstConfidence(OK, Unavailable, Partial))
	assert.Equal(t, Suspect, WorstConfidence(Suspect, Stale, OK))
	assert.Equal(t, Stale, WorstConfidence(Partial, Stale))
	assert.Equal(t, OK, WorstConfidence(OK, OK))
	assert.Equal(t, Unavailable, WorstConfidence(), "empty set defaults to worst")
}

func TestWorstConfidence_OrderConsistent(t *testing.T) {
	all := []Confidence{Unavailable, Suspect, Stale, Partial, OK}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(5)
		set := make([]Confidence, n)
		min := OK
		for j := range set {
			set[j] = all[rng.Intn(len(all))]
			if set[j] < min {
				min = set[j]
			}
		}
		assert.Equal(t, min, WorstConfidence(set...),
			"worst of any set equals its minimum under the fixed ranking")
	}
}

func TestConfidence_StringRoundTrip(t *testing.T) {
	for _, c := range []Confidence{Unavailable, Suspect, Stale, Partial, OK} {
		parsed, ok := ParseConfidence(c.String())
		assert.True(t, ok)
		assert.Equal(t, c, parsed)
	}

	_, ok := ParseConfidence("BOGUS")
	assert.False(t, ok)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 2.0, clampScore(5.0))
	assert.Equal(t, -2.0, clampScore(-3.1))
	assert.Equal(t, 0.7, clampScore(0.7))
}
