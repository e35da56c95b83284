package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"main/internal/bookcache"
	"main/internal/schema"
)

func barsFromSeries(vals []float64) []bookcache.Bar {
	out := make([]bookcache.Bar, len(vals))
	for i, v := range vals {
		out[i] = bookcache.Bar{StartMs: int64(i) * 1000, Mid: v}
	}
	return out
}

// laggedSeries builds two series where B's value at t equals A's value at
// t-lag, i.e. A leads B by `lag` bars.
func laggedSeries(n, lag int) (a, b []float64) {
	a = make([]float64, n)
	b = make([]float64, n)
	for t := 0; t < n; t++ {
		a[t] = 100 + 10*math.Sin(float64(t)*0.35)
	}
	for t := 0; t < n; t++ {
		src := t - lag
		if src < 0 {
			src = 0
		}
		b[t] = a[src]
	}
	return a, b
}

func TestLeadLagDetectorIdentifiesLeaderA(t *testing.T) {
	d := NewLeadLagDetector(30, 4)
	a, b := laggedSeries(40, 2)
	barsA, barsB := barsFromSeries(a), barsFromSeries(b)

	var leader schema.Leader
	for i := 0; i < 4; i++ {
		leader = d.Evaluate(barsA, barsB)
	}
	assert.Equal(t, schema.LeaderA, leader)
}

func TestLeadLagDetectorIdentifiesLeaderB(t *testing.T) {
	d := NewLeadLagDetector(30, 4)
	b, a := laggedSeries(40, 3)
	barsA, barsB := barsFromSeries(a), barsFromSeries(b)

	var leader schema.Leader
	for i := 0; i < 4; i++ {
		leader = d.Evaluate(barsA, barsB)
	}
	assert.Equal(t, schema.LeaderB, leader)
}

func TestLeadLagDetectorInsufficientWindowIsNone(t *testing.T) {
	d := NewLeadLagDetector(30, 4)
	barsA := barsFromSeries([]float64{1, 2, 3})
	barsB := barsFromSeries([]float64{1, 2, 3})
	assert.Equal(t, schema.LeaderNone, d.Evaluate(barsA, barsB))
}

func TestLeadLagDetectorRequiresStabilityAgreement(t *testing.T) {
	d := NewLeadLagDetector(30, 4)
	a, b := laggedSeries(40, 2)
	barsA, barsB := barsFromSeries(a), barsFromSeries(b)

	// A single evaluation should never be enough to confirm a leader.
	assert.Equal(t, schema.LeaderNone, d.Evaluate(barsA, barsB))
}
