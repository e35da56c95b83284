// Package registry implements the Market Registry & Pair Store: the
// single source of truth for which markets exist, which pairs are active,
// and which fee schedule applies to a venue at any moment.
package registry

import (
	"fmt"
	"sync/atomic"

	"main/internal/schema"
)

// snapshot is the immutable, copy-on-write view served to readers.
type snapshot struct {
	markets  map[schema.MarketID]schema.Market
	pairs    map[schema.PairID]schema.Pair
	feePacks map[schema.VenueID]schema.FeePack
}

func emptySnapshot() *snapshot {
	return &snapshot{
		markets:  make(map[schema.MarketID]schema.Market),
		pairs:    make(map[schema.PairID]schema.Pair),
		feePacks: make(map[schema.VenueID]schema.FeePack),
	}
}

func (s *snapshot) clone() *snapshot {
	next := &snapshot{
		markets:  make(map[schema.MarketID]schema.Market, len(s.markets)),
		pairs:    make(map[schema.PairID]schema.Pair, len(s.pairs)),
		feePacks: make(map[schema.VenueID]schema.FeePack, len(s.feePacks)),
	}
	for k, v := range s.markets {
		next.markets[k] = v
	}
	for k, v := range s.pairs {
		next.pairs[k] = v
	}
	for k, v := range s.feePacks {
		next.feePacks[k] = v
	}
	return next
}

// Store is the Market Registry & Pair Store. All mutation methods are
// single-writer; readers get a consistent copy-on-write snapshot without
// locking.
type Store struct {
	reg   *schema.Registry
	v     atomic.Value // *snapshot
	nextP uint32
}

// New creates an empty store wrapping a venue/symbol registry.
func New(reg *schema.Registry) *Store {
	s := &Store{reg: reg}
	s.v.Store(emptySnapshot())
	return s
}

func (s *Store) load() *snapshot {
	return s.v.Load().(*snapshot)
}

// PutMarket registers or updates a market's metadata.
func (s *Store) PutMarket(m schema.Market) {
	next := s.load().clone()
	next.markets[m.ID] = m
	s.v.Store(next)
}

// Market returns a market by ID.
func (s *Store) Market(id schema.MarketID) (schema.Market, bool) {
	m, ok := s.load().markets[id]
	return m, ok
}

// PutFeePack publishes a new immutable fee schedule for a venue. Holders
// of a prior FeePack value keep using it; this never mutates in place.
func (s *Store) PutFeePack(fp schema.FeePack) {
	next := s.load().clone()
	next.feePacks[fp.VenueID] = fp
	s.v.Store(next)
}

// FeePack returns the current fee schedule for a venue.
func (s *Store) FeePack(venue schema.VenueID) (schema.FeePack, bool) {
	fp, ok := s.load().feePacks[venue]
	return fp, ok
}

// RegisterPair stores the pair with its hard-rule outcomes and similarity
// score, inactive until an operator or feed activates it via
// SetPairActive, which is where those are checked. It rejects only a pair
// whose two legs are identical.
func (s *Store) RegisterPair(marketA, marketB schema.MarketID, venueA, venueB schema.VenueID, similarity float64, rules schema.HardRules) (schema.PairID, error) {
	if marketA == marketB && venueA == venueB {
		return 0, fmt.Errorf("registry: pair legs are identical")
	}
	cur := s.load()
	id := schema.PairID(atomic.AddUint32(&s.nextP, 1))
	pair := schema.Pair{
		ID:              id,
		MarketA:         marketA,
		VenueA:          venueA,
		MarketB:         marketB,
		VenueB:          venueB,
		SimilarityScore: similarity,
		Rules:           rules,
		Active:          false,
		VersionHash:     1,
	}
	next := cur.clone()
	next.pairs[id] = pair
	s.v.Store(next)
	return id, nil
}

// SetPairActive flips a pair's admission gate. Per design, this never
// touches in-flight hedges; only new admissions are affected.
func (s *Store) SetPairActive(id schema.PairID, active bool) error {
	cur := s.load()
	pair, ok := cur.pairs[id]
	if !ok {
		return fmt.Errorf("registry: unknown pair %d", id)
	}
	if active && !s.eligible(pair) {
		return fmt.Errorf("registry: pair %d fails admission rules (similarity=%.3f rules_passed=%v)", id, pair.SimilarityScore, pair.Rules.AllPassed())
	}
	pair.Active = active
	pair.VersionHash++
	next := cur.clone()
	next.pairs[id] = pair
	s.v.Store(next)
	return nil
}

func (s *Store) eligible(p schema.Pair) bool {
	const minSimilarity = 0.92
	return p.SimilarityScore >= minSimilarity && p.Rules.AllPassed()
}

// Pair returns a pair by ID.
func (s *Store) Pair(id schema.PairID) (schema.Pair, bool) {
	p, ok := s.load().pairs[id]
	return p, ok
}

// ActivePairs returns a consistent snapshot of every active pair.
func (s *Store) ActivePairs() []schema.Pair {
	cur := s.load()
	out := make([]schema.Pair, 0, len(cur.pairs))
	for _, p := range cur.pairs {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

// Registry exposes the underlying venue/symbol registry.
func (s *Store) Registry() *schema.Registry {
	return s.reg
}
