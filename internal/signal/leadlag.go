package signal

import (
	"math"

	"main/internal/bookcache"
	"main/internal/schema"
)

// DefaultWindowBars is W=120 bars (10 minutes at the default 5s bar).
const DefaultWindowBars = 120

// DefaultMaxLagBars is Lmax=6 bars.
const DefaultMaxLagBars = 6

// stabilityHistory is how many recent evaluations the stability filter
// looks back over, requiring agreement in 3 of the last 4 evaluations.
const stabilityHistory = 4
const stabilityAgreement = 3

// LeadLagDetector tracks rolling cross-correlation between two markets'
// mid-price bars and emits a stable leader hint, never overriding
// admission — it only annotates EdgeQuote.Leader.
type LeadLagDetector struct {
	windowBars int
	maxLagBars int
	history    []schema.Leader
}

// NewLeadLagDetector creates a detector with the given window and max lag.
func NewLeadLagDetector(windowBars, maxLagBars int) *LeadLagDetector {
	return &LeadLagDetector{windowBars: windowBars, maxLagBars: maxLagBars}
}

// Evaluate computes the current raw leader from the two markets' bar
// rings, folds it into the stability history, and returns the confirmed
// leader (LeaderNone unless 3 of the last 4 raw evaluations agree).
func (d *LeadLagDetector) Evaluate(barsA, barsB []bookcache.Bar) schema.Leader {
	raw := d.rawLeader(barsA, barsB)
	d.history = append(d.history, raw)
	if len(d.history) > stabilityHistory {
		d.history = d.history[len(d.history)-stabilityHistory:]
	}
	return d.stableLeader()
}

func (d *LeadLagDetector) rawLeader(barsA, barsB []bookcache.Bar) schema.Leader {
	n := d.windowBars
	if len(barsA) < n {
		n = len(barsA)
	}
	if len(barsB) < n {
		n = len(barsB)
	}
	if n <= d.maxLagBars*2+1 {
		return schema.LeaderNone
	}
	seriesA := midSeries(barsA[len(barsA)-n:])
	seriesB := midSeries(barsB[len(barsB)-n:])

	bestLag := 0
	bestCorr := 0.0
	haveBest := false
	for lag := -d.maxLagBars; lag <= d.maxLagBars; lag++ {
		c, ok := laggedCorrelation(seriesA, seriesB, lag)
		if !ok {
			continue
		}
		if !haveBest || absF(c) > absF(bestCorr) {
			bestCorr = c
			bestLag = lag
			haveBest = true
		}
	}
	if !haveBest || bestLag == 0 {
		return schema.LeaderNone
	}
	if bestLag > 0 {
		// A's value at t-lag correlates with B's value at t: A moves first.
		return schema.LeaderA
	}
	return schema.LeaderB
}

func (d *LeadLagDetector) stableLeader() schema.Leader {
	if len(d.history) < stabilityAgreement {
		return schema.LeaderNone
	}
	counts := map[schema.Leader]int{}
	for _, l := range d.history {
		counts[l]++
	}
	for leader, n := range counts {
		if leader == schema.LeaderNone {
			continue
		}
		if n >= stabilityAgreement {
			return leader
		}
	}
	return schema.LeaderNone
}

func midSeries(bars []bookcache.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Mid
	}
	return out
}

// laggedCorrelation returns Pearson correlation between a shifted by lag
// (a[t-lag]) and b (b[t]) over their overlap.
func laggedCorrelation(a, b []float64, lag int) (float64, bool) {
	n := len(a)
	if len(b) != n {
		if len(b) < n {
			n = len(b)
		}
	}
	var xs, ys []float64
	for t := 0; t < n; t++ {
		src := t - lag
		if src < 0 || src >= n {
			continue
		}
		xs = append(xs, a[src])
		ys = append(ys, b[t])
	}
	if len(xs) < 8 {
		return 0, false
	}
	return pearson(xs, ys), true
}

func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumX2 += xs[i] * xs[i]
		sumY2 += ys[i] * ys[i]
	}
	numer := n*sumXY - sumX*sumY
	denomX := n*sumX2 - sumX*sumX
	denomY := n*sumY2 - sumY*sumY
	if denomX <= 0 || denomY <= 0 {
		return 0
	}
	denom := math.Sqrt(denomX) * math.Sqrt(denomY)
	if denom == 0 {
		return 0
	}
	return numer / denom
}

func absF(v float64) float64 {
	return math.Abs(v)
}
