package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"main/internal/schema"
)

func TestFreshnessWatchdogTripsAfterThreshold(t *testing.T) {
	w := NewFreshnessWatchdog(3)
	venue := schema.VenueID(1)
	assert.False(t, w.Observe(venue, true))
	assert.False(t, w.Observe(venue, true))
	assert.True(t, w.Observe(venue, true))
}

func TestFreshnessWatchdogClearsOnNonDeniedEvaluation(t *testing.T) {
	w := NewFreshnessWatchdog(3)
	venue := schema.VenueID(1)
	assert.False(t, w.Observe(venue, true))
	assert.False(t, w.Observe(venue, true))
	assert.False(t, w.Observe(venue, false))
	assert.False(t, w.Observe(venue, true))
	assert.False(t, w.Observe(venue, true))
}

func TestFreshnessWatchdogTracksVenuesIndependently(t *testing.T) {
	w := NewFreshnessWatchdog(2)
	venueA, venueB := schema.VenueID(1), schema.VenueID(2)
	assert.False(t, w.Observe(venueA, true))
	assert.False(t, w.Observe(venueB, true))
	assert.True(t, w.Observe(venueA, true))
	assert.False(t, w.Observe(venueB, false))
}

func TestFreshnessWatchdogResetsStreakAfterTripping(t *testing.T) {
	w := NewFreshnessWatchdog(2)
	venue := schema.VenueID(1)
	assert.True(t, w.Observe(venue, true))
	assert.False(t, w.Observe(venue, true))
}
