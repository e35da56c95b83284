package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"main/internal/schema"
)

func TestHedgeProbabilityEstimatorDefaultsToOneWithoutHistory(t *testing.T) {
	e := NewHedgeProbabilityEstimator(4)
	assert.Equal(t, 1.0, e.Estimate(1, 2))
}

func TestHedgeProbabilityEstimatorComputesRate(t *testing.T) {
	e := NewHedgeProbabilityEstimator(4)
	e.Record(1, true)
	e.Record(1, true)
	e.Record(1, false)
	e.Record(1, true)
	assert.Equal(t, 0.75, e.Estimate(1))
}

func TestHedgeProbabilityEstimatorTakesWorstOfBothVenues(t *testing.T) {
	e := NewHedgeProbabilityEstimator(4)
	e.Record(1, true)
	e.Record(1, true)
	e.Record(2, true)
	e.Record(2, false)
	assert.Equal(t, 0.5, e.Estimate(1, 2))
}

func TestHedgeProbabilityEstimatorEvictsOldestSample(t *testing.T) {
	e := NewHedgeProbabilityEstimator(2)
	e.Record(1, false)
	e.Record(1, false)
	e.Record(1, true)
	e.Record(1, true)
	assert.Equal(t, 1.0, e.Estimate(1))
}

func TestHedgeProbabilityEstimatorTreatsUnknownVenueAsOptimistic(t *testing.T) {
	e := NewHedgeProbabilityEstimator(4)
	e.Record(1, false)
	assert.Equal(t, 0.0, e.Estimate(1, schema.VenueID(99)))
}
