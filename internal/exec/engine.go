// Package exec implements the Hedged-Execution Engine: the two-legged
// state machine that turns an admitted ExecutionIntent into a committed,
// unwound, or failed TradeRecord.
package exec

import (
	"sync"

	"main/internal/errors"
	"main/internal/og"
	"main/internal/schema"
)

// State is a hedge's position in the execution state machine.
type State uint8

const (
	StateReady State = iota
	StatePlacingPrimary
	StatePlacingHedge
	StateAwaitingFills
	StateUnwinding
	StateSettled
	StateUnwound
	StateFailed
)

func (s State) Terminal() bool {
	return s == StateSettled || s == StateUnwound || s == StateFailed
}

// legRole distinguishes the first ("primary") and second ("hedge") leg of
// a package. Only one leg is ever in flight before AwaitingFills.
type legRole uint8

const (
	legPrimary legRole = iota
	legHedge
)

// Config holds the execution engine's bounded-lifetime and unwind knobs.
type Config struct {
	HedgeTimeoutMs      int64
	UnwindBudgetMs      int64
	UnwindMaxRetries    int
	UnwindBackoffCapMs  int64
	AdverseMoveCents    schema.Price
	AdverseMoveHoldMs   int64
}

// DefaultConfig returns the documented hedge-execution defaults.
func DefaultConfig() Config {
	return Config{
		HedgeTimeoutMs:     250,
		UnwindBudgetMs:     800,
		UnwindMaxRetries:   3,
		UnwindBackoffCapMs: 800,
		AdverseMoveCents:   2, // 1.5 cents rounded up to whole-cent Price units: whole-cent deviations >= 2 are exactly those >= 1.5
		AdverseMoveHoldMs:  5000,
	}
}

// VenueDispatcher is the capability the engine needs from a venue adapter
// to place and cancel single-leg orders. Concrete adapters in
// internal/venue implement this.
type VenueDispatcher interface {
	PlaceTaker(intent schema.OrderIntent) (schema.OrderAck, error)
	Cancel(venue schema.VenueID, orderID uint64) error
}

// Hedge tracks one in-flight (or terminal) two-legged trade.
type Hedge struct {
	Intent schema.ExecutionIntent

	State State

	primaryVenue schema.VenueID
	hedgeVenue   schema.VenueID
	primary      *og.Order
	hedge        *og.Order

	primaryFilled bool
	hedgeFilled   bool

	unwindAttempts   int
	adverseSinceMs   int64
	adverseSideKnown bool

	DeadlineMs int64
}

// Engine drives Hedge state machines. Sends go through per-venue
// VenueDispatchers and per-venue order state through og.StateMachine
// instances (adapted from a single-order gateway design).
type Engine struct {
	cfg Config

	mu       sync.Mutex
	hedges   map[uint64]*Hedge
	venues   map[schema.VenueID]VenueDispatcher
	orderSMs map[schema.VenueID]*og.StateMachine
	halted   map[schema.VenueID]bool
	audit    []AuditEntry
}

// NewEngine creates an execution engine wired to the given venue
// dispatchers, keyed by venue ID.
func NewEngine(cfg Config, venues map[schema.VenueID]VenueDispatcher) *Engine {
	sms := make(map[schema.VenueID]*og.StateMachine, len(venues))
	for id := range venues {
		sms[id] = og.NewStateMachine()
	}
	return &Engine{
		cfg:      cfg,
		hedges:   make(map[uint64]*Hedge),
		venues:   venues,
		orderSMs: sms,
		halted:   make(map[schema.VenueID]bool),
	}
}

// Start begins a new hedge: places the primary leg and, once the primary
// is acked filled, the hedge leg. The hedge leg is never sent until the
// primary is acked filled, enforcing no-legging outside
// AwaitingFills/Unwinding.
func (e *Engine) Start(intent schema.ExecutionIntent, primaryVenue, hedgeVenue schema.VenueID, primaryIntent, hedgeIntent schema.OrderIntent, nowMs int64) (*Hedge, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.hedges[intent.IntentID]; ok {
		return nil, errors.Newf(errors.ProgrammerError, "exec: duplicate intent %d", intent.IntentID)
	}
	if e.halted[primaryVenue] || e.halted[hedgeVenue] {
		return nil, errors.Newf(errors.VenueReject, "exec: venue halted by operator")
	}

	h := &Hedge{
		Intent:       intent,
		State:        StatePlacingPrimary,
		primaryVenue: primaryVenue,
		hedgeVenue:   hedgeVenue,
		DeadlineMs:   nowMs + e.cfg.HedgeTimeoutMs + e.cfg.UnwindBudgetMs,
	}
	e.hedges[intent.IntentID] = h

	dispatcher, ok := e.venues[primaryVenue]
	if !ok {
		h.State = StateFailed
		return h, errors.Newf(errors.ConfigError, "exec: no dispatcher for venue %d", primaryVenue)
	}
	ack, err := dispatcher.PlaceTaker(primaryIntent)
	if err != nil {
		h.State = StateFailed
		return h, errors.WrapKind(errors.TransportError, err, "exec: place primary")
	}
	order, smErr := e.orderSMs[primaryVenue].ApplyIntent(primaryIntent)
	if smErr != nil {
		h.State = StateFailed
		return h, errors.WrapKind(errors.ProgrammerError, smErr, "exec: apply primary intent")
	}
	h.primary = order
	e.applyAckLocked(h, primaryVenue, ack, legPrimary, hedgeIntent)
	return h, nil
}

func (e *Engine) applyAckLocked(h *Hedge, venue schema.VenueID, ack schema.OrderAck, role legRole, hedgeIntent schema.OrderIntent) {
	if _, err := e.orderSMs[venue].ApplyAck(ack); err != nil {
		return
	}

	switch ack.Status {
	case schema.OrderAckStatusRejected, schema.OrderAckStatusExpired, schema.OrderAckStatusCanceled:
		// The engine never retries a rejected primary;
		// a fresh EdgeQuote must re-trigger a new hedge attempt.
		if role == legPrimary {
			h.State = StateFailed
			return
		}
		// A hedge-leg reject with a filled primary is a legging risk:
		// move straight to unwind.
		h.State = StateUnwinding
		return
	case schema.OrderAckStatusFilled:
		if role == legPrimary {
			h.primaryFilled = true
			h.State = StatePlacingHedge
			dispatcher, ok := e.venues[h.hedgeVenue]
			if !ok {
				h.State = StateUnwinding
				return
			}
			hedgeAck, err := dispatcher.PlaceTaker(hedgeIntent)
			if err != nil {
				h.State = StateUnwinding
				return
			}
			order, err := e.orderSMs[h.hedgeVenue].ApplyIntent(hedgeIntent)
			if err != nil {
				h.State = StateUnwinding
				return
			}
			h.hedge = order
			h.State = StateAwaitingFills
			e.applyAckLocked(h, h.hedgeVenue, hedgeAck, legHedge, schema.OrderIntent{})
			return
		}
		h.hedgeFilled = true
		if h.primaryFilled && h.hedgeFilled {
			h.State = StateSettled
		}
	case schema.OrderAckStatusPartFilled, schema.OrderAckStatusAcked:
		// A taker order that neither filled nor rejected outright is
		// resting against the book. Once it has worked any partial
		// position, that position is a leg the no-legging invariant
		// cannot tolerate sitting unresolved; unwind it rather than
		// waiting on the bounded-lifetime deadline to force a bare
		// Failed.
		if order, ok := e.orderSMs[venue].Order(ack.OrderID); ok && order.Qty > order.LeavesQty {
			h.State = StateUnwinding
		}
	}
}

// NoteAdverseMove records the current mid-price deviation against the
// unfilled leg's fair price; if the deviation has persisted at or beyond
// AdverseMoveCents for AdverseMoveHoldMs, the hedge is moved to
// Unwinding on an adverse move.
func (e *Engine) NoteAdverseMove(intentID uint64, deviationCents schema.Price, nowMs int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.hedges[intentID]
	if !ok || h.State.Terminal() || h.State == StateUnwinding {
		return
	}
	if deviationCents < e.cfg.AdverseMoveCents {
		h.adverseSideKnown = false
		return
	}
	if !h.adverseSideKnown {
		h.adverseSideKnown = true
		h.adverseSinceMs = nowMs
		return
	}
	if nowMs-h.adverseSinceMs >= e.cfg.AdverseMoveHoldMs {
		h.State = StateUnwinding
	}
}

// Tick advances time-based transitions: bounded-lifetime enforcement and
// unwind processing. Callers invoke this periodically (e.g. every
// signal-engine cycle) with the current time. Each call makes one unwind
// attempt per Unwinding hedge; it does not wait between attempts and does
// not consult UnwindBackoffMs.
func (e *Engine) Tick(nowMs int64, unwind func(h *Hedge) error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, h := range e.hedges {
		if h.State.Terminal() {
			continue
		}
		if h.State == StateAwaitingFills && nowMs >= h.Intent.CreatedMs+e.cfg.HedgeTimeoutMs {
			h.State = StateUnwinding
		}
		// Any live leg still outstanding at the bounded-lifetime deadline
		// is a short leg, not a clean failure: route it through Unwinding
		// first. Failed follows a failed unwind attempt, it never
		// replaces one.
		if h.State != StateUnwinding && nowMs >= h.DeadlineMs {
			h.State = StateUnwinding
		}
		if h.State == StateUnwinding {
			if h.unwindAttempts >= e.cfg.UnwindMaxRetries {
				h.State = StateFailed
				continue
			}
			if err := unwind(h); err != nil {
				h.unwindAttempts++
				continue
			}
			h.State = StateUnwound
		}
	}
}

// PrimaryVenue returns the venue the primary leg was placed on.
func (h *Hedge) PrimaryVenue() schema.VenueID { return h.primaryVenue }

// HedgeVenue returns the venue the hedge leg was (or would be) placed on.
func (h *Hedge) HedgeVenue() schema.VenueID { return h.hedgeVenue }

// PrimaryFilled reports whether the primary leg has filled.
func (h *Hedge) PrimaryFilled() bool { return h.primaryFilled }

// HedgeFilled reports whether the hedge leg has filled.
func (h *Hedge) HedgeFilled() bool { return h.hedgeFilled }

// Get returns a hedge by intent ID.
func (e *Engine) Get(intentID uint64) (*Hedge, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.hedges[intentID]
	return h, ok
}

// LiveHedgeCountForPair returns the number of non-terminal hedges
// currently in flight for a pair, for risk predicate 3 (per-pair
// concurrency).
func (e *Engine) LiveHedgeCountForPair(pairID schema.PairID) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	count := 0
	for _, h := range e.hedges {
		if !h.State.Terminal() && h.Intent.PairID == pairID {
			count++
		}
	}
	return count
}

// LiveHedgePairCount returns the number of distinct pairs currently
// holding at least one non-terminal hedge, for risk predicate 4 (global
// concurrent hedged pairs).
func (e *Engine) LiveHedgePairCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	pairs := make(map[schema.PairID]struct{})
	for _, h := range e.hedges {
		if !h.State.Terminal() {
			pairs[h.Intent.PairID] = struct{}{}
		}
	}
	return len(pairs)
}

// UnwindBackoffMs returns the capped exponential backoff delay for the
// given (zero-based) unwind attempt number.
func (e *Engine) UnwindBackoffMs(attempt int) int64 {
	delay := int64(50)
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= e.cfg.UnwindBackoffCapMs {
			return e.cfg.UnwindBackoffCapMs
		}
	}
	if delay > e.cfg.UnwindBackoffCapMs {
		return e.cfg.UnwindBackoffCapMs
	}
	return delay
}
