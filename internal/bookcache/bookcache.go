// Package bookcache implements the Book Cache: a single-writer-per-market
// snapshot cell plus a bounded ring of time-weighted mid-price bars used
// by the signal engine's lead-lag cross-correlation.
package bookcache

import (
	"sync"
	"sync/atomic"

	"main/internal/schema"
)

// DefaultBarDurationMs is the default bar width.
const DefaultBarDurationMs = 5000

// DefaultRetentionMs is the default ring retention window (10 minutes).
const DefaultRetentionMs = 10 * 60 * 1000

// Bar is a single time-weighted mid-price bucket.
type Bar struct {
	StartMs int64
	Mid     float64
	// Filled is true if the bar was carried forward from the previous
	// observed mid because no update landed inside its window.
	Filled bool
}

type marketState struct {
	latest atomic.Value // schema.BookSnapshot

	mu           sync.Mutex // guards the fields below; single writer per market
	bars         []Bar
	barDurMs     int64
	retentionN   int
	curBucket    int64
	sumWeighted  float64
	sumWeight    float64
	lastMid      float64
	lastTsMs     int64
	haveLastMid  bool
	staleAfterMs int64
	lastWriteMs  int64
}

// Cache owns one marketState per market, created lazily on first write.
type Cache struct {
	mu             sync.Mutex
	markets        map[schema.MarketID]*marketState
	barDurationMs  int64
	retentionMs    int64
	freshnessMs    int64
}

// New creates a Book Cache with the given bar duration and retention.
// evictAfterMs is the staleness threshold beyond which a market's cached
// snapshot is dropped entirely rather than merely marked stale
// a market with no update for
// evictAfterMs is evicted on next touch.
func New(barDurationMs, retentionMs, evictAfterMs int64) *Cache {
	return &Cache{
		markets:       make(map[schema.MarketID]*marketState),
		barDurationMs: barDurationMs,
		retentionMs:   retentionMs,
		freshnessMs:   evictAfterMs,
	}
}

func (c *Cache) stateFor(id schema.MarketID) *marketState {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.markets[id]
	if !ok {
		st = &marketState{
			barDurMs:     c.barDurationMs,
			retentionN:   int(c.retentionMs / c.barDurationMs),
			staleAfterMs: c.freshnessMs,
		}
		c.markets[id] = st
	}
	return st
}

// Update applies a fresh BookSnapshot for a market. Must only be called
// by the single writer owning that market.
func (c *Cache) Update(snap schema.BookSnapshot) {
	st := c.stateFor(snap.MarketID)
	st.latest.Store(snap)

	bestBid, okB := snap.BestBid()
	bestAsk, okA := snap.BestAsk()
	if !okB || !okA {
		return
	}
	mid := (float64(bestBid.Price) + float64(bestAsk.Price)) / 2

	st.mu.Lock()
	defer st.mu.Unlock()
	st.lastWriteMs = snap.VenueTsMs
	c.accumulate(st, snap.VenueTsMs, mid)
}

// accumulate folds a new mid observation into the current bar, rolling
// bars forward (carrying the last known mid into any skipped bars) and
// evicting the oldest bar once the ring exceeds retention.
func (c *Cache) accumulate(st *marketState, tsMs int64, mid float64) {
	bucket := tsMs / st.barDurMs
	if !st.haveLastMid {
		st.curBucket = bucket
		st.lastMid = mid
		st.lastTsMs = tsMs
		st.haveLastMid = true
		return
	}

	for st.curBucket < bucket {
		weight := float64(st.barDurMs)
		st.sumWeighted += st.lastMid * weight
		st.sumWeight += weight
		c.pushBar(st, Bar{StartMs: st.curBucket * st.barDurMs, Mid: st.avgOrLast(), Filled: st.lastTsMs/st.barDurMs != st.curBucket})
		st.sumWeighted, st.sumWeight = 0, 0
		st.curBucket++
	}

	weight := float64(tsMs - st.lastTsMs)
	if weight < 0 {
		weight = 0
	}
	st.sumWeighted += st.lastMid * weight
	st.sumWeight += weight
	st.lastMid = mid
	st.lastTsMs = tsMs
}

func (st *marketState) avgOrLast() float64 {
	if st.sumWeight <= 0 {
		return st.lastMid
	}
	return st.sumWeighted / st.sumWeight
}

func (c *Cache) pushBar(st *marketState, b Bar) {
	st.bars = append(st.bars, b)
	if len(st.bars) > st.retentionN {
		st.bars = st.bars[len(st.bars)-st.retentionN:]
	}
}

// Latest returns the most recent snapshot for a market, evicting and
// returning false if it has gone stale beyond the configured threshold.
func (c *Cache) Latest(id schema.MarketID, nowMs int64) (schema.BookSnapshot, bool) {
	st := c.stateFor(id)
	v := st.latest.Load()
	if v == nil {
		return schema.BookSnapshot{}, false
	}
	snap := v.(schema.BookSnapshot)
	if st.staleAfterMs > 0 && nowMs-snap.VenueTsMs > st.staleAfterMs {
		c.mu.Lock()
		delete(c.markets, id)
		c.mu.Unlock()
		return schema.BookSnapshot{}, false
	}
	return snap, true
}

// Bars returns a copy of the retained bar ring for a market, oldest first.
func (c *Cache) Bars(id schema.MarketID) []Bar {
	st := c.stateFor(id)
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]Bar, len(st.bars))
	copy(out, st.bars)
	return out
}
