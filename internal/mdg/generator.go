// Package mdg generates synthetic book data for paper trading, in place
// of a live venue feed: a two-venue, correlated-random-walk generator
// matching the depth shape internal/venue adapters publish.
package mdg

import (
	"math/rand"

	"main/internal/schema"
)

// PairSpec describes one synthetic pair's starting conditions.
type PairSpec struct {
	MarketA, MarketB schema.MarketID
	VenueA, VenueB   schema.VenueID
	StartPriceCents  schema.Price
	SpreadCents      schema.Price
	DepthQty         schema.Quantity
	LagBars          int // venue B trails venue A's move by this many Next() calls
	NoiseCents       schema.Price
}

// PairGenerator produces correlated synthetic book snapshots for both legs
// of a pair, with venue B optionally lagging venue A to exercise the
// lead-lag detector.
type PairGenerator struct {
	spec    PairSpec
	rng     *rand.Rand
	seq     uint64
	priceA  schema.Price
	history []schema.Price // venue A's recent mid, for the lag
}

// NewPairGenerator creates a generator seeded for reproducible paper runs.
func NewPairGenerator(spec PairSpec, seed int64) *PairGenerator {
	if spec.LagBars < 0 {
		spec.LagBars = 0
	}
	return &PairGenerator{
		spec:    spec,
		rng:     rand.New(rand.NewSource(seed)),
		priceA:  spec.StartPriceCents,
		history: make([]schema.Price, 0, spec.LagBars+1),
	}
}

// Next produces one tick's worth of book snapshots for both legs.
func (g *PairGenerator) Next(nowMs int64) (bookA, bookB schema.BookSnapshot) {
	g.seq++
	step := schema.Price(g.rng.Intn(5) - 2) // -2..+2 cents
	g.priceA += step
	if g.priceA < schema.Price(g.spec.SpreadCents) {
		g.priceA = schema.Price(g.spec.SpreadCents)
	}
	if g.priceA > 100-schema.Price(g.spec.SpreadCents) {
		g.priceA = 100 - schema.Price(g.spec.SpreadCents)
	}

	g.history = append(g.history, g.priceA)
	if len(g.history) > g.spec.LagBars+1 {
		g.history = g.history[len(g.history)-(g.spec.LagBars+1):]
	}
	laggedIdx := len(g.history) - 1 - g.spec.LagBars
	if laggedIdx < 0 {
		laggedIdx = 0
	}
	priceB := g.history[laggedIdx] + schema.Price(g.rng.Intn(int(2*g.spec.NoiseCents+1))) - g.spec.NoiseCents

	bookA = g.snapshot(g.spec.VenueA, g.spec.MarketA, g.priceA, nowMs)
	bookB = g.snapshot(g.spec.VenueB, g.spec.MarketB, priceB, nowMs)
	return bookA, bookB
}

func (g *PairGenerator) snapshot(venue schema.VenueID, market schema.MarketID, mid schema.Price, nowMs int64) schema.BookSnapshot {
	half := g.spec.SpreadCents / 2
	if half < 1 {
		half = 1
	}
	return schema.BookSnapshot{
		VenueID:    venue,
		MarketID:   market,
		SequenceNo: g.seq,
		VenueTsMs:  nowMs,
		RecvTsMs:   nowMs,
		Bids: []schema.Level{
			{Price: mid - half, Quantity: g.spec.DepthQty},
			{Price: mid - half - 1, Quantity: g.spec.DepthQty * 2},
		},
		Asks: []schema.Level{
			{Price: mid + half, Quantity: g.spec.DepthQty},
			{Price: mid + half + 1, Quantity: g.spec.DepthQty * 2},
		},
	}
}
