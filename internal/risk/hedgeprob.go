package risk

import (
	"sync"

	"main/internal/schema"
)

// DefaultHedgeProbabilityWindow is the number of most recent trade
// outcomes kept per venue when estimating hedge-completion probability.
const DefaultHedgeProbabilityWindow = 200

// HedgeProbabilityEstimator tracks a rolling per-venue hedge-success rate
// from observed trade outcomes, feeding StateView.HedgeProbability for
// risk predicate 8. Settled counts as success; Unwound and Failed count
// as failure.
type HedgeProbabilityEstimator struct {
	window int

	mu       sync.Mutex
	outcomes map[schema.VenueID][]bool
	next     map[schema.VenueID]int
	filled   map[schema.VenueID]int
}

// NewHedgeProbabilityEstimator creates an estimator with the given
// per-venue rolling window size.
func NewHedgeProbabilityEstimator(window int) *HedgeProbabilityEstimator {
	if window <= 0 {
		window = DefaultHedgeProbabilityWindow
	}
	return &HedgeProbabilityEstimator{
		window:   window,
		outcomes: make(map[schema.VenueID][]bool),
		next:     make(map[schema.VenueID]int),
		filled:   make(map[schema.VenueID]int),
	}
}

// Record appends a trade outcome for a venue into its rolling window,
// evicting the oldest sample once the window is full.
func (e *HedgeProbabilityEstimator) Record(venue schema.VenueID, success bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	buf, ok := e.outcomes[venue]
	if !ok {
		buf = make([]bool, e.window)
		e.outcomes[venue] = buf
	}
	idx := e.next[venue]
	buf[idx] = success
	e.next[venue] = (idx + 1) % e.window
	if e.filled[venue] < e.window {
		e.filled[venue]++
	}
}

// Estimate returns the lowest observed success rate among the given
// venues, since a hedge needs both legs to complete. A venue with no
// recorded history yet contributes 1 (optimistic default), matching the
// risk engine's own MinHedgeProbability default of treating an unseeded
// estimate as passing.
func (e *HedgeProbabilityEstimator) Estimate(venues ...schema.VenueID) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	best := 1.0
	for _, v := range venues {
		filled := e.filled[v]
		if filled == 0 {
			continue
		}
		successes := 0
		for _, ok := range e.outcomes[v][:filled] {
			if ok {
				successes++
			}
		}
		rate := float64(successes) / float64(filled)
		if rate < best {
			best = rate
		}
	}
	return best
}
