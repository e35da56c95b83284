package venue

import (
	"context"
	"sync"
	"sync/atomic"

	internalerrors "main/internal/errors"
	"main/internal/schema"
)

// SimAdapter is a deterministic, in-memory venue used by tests and the
// paper-trading tool. It implements the same Adapter capability set as a
// real StreamAdapter+RESTOrderer pair so the signal/risk/exec pipeline
// can be exercised without network access, using a synthetic generator
// (internal/mdg) in place of a live feed.
type SimAdapter struct {
	id schema.VenueID

	mu      sync.Mutex
	healthy bool
	books   map[schema.MarketID]schema.BookSnapshot
	subs    map[schema.MarketID]chan schema.BookSnapshot
	fills   chan schema.Fill

	nextOrder  atomic.Uint64
	rejectNext bool
	fillDelay  func(schema.OrderIntent) (schema.OrderAckStatus, schema.OrderAckReason)
}

// NewSimAdapter creates a simulated venue that is healthy by default and
// fills every taker order immediately at the requested price.
func NewSimAdapter(id schema.VenueID) *SimAdapter {
	return &SimAdapter{
		id:      id,
		healthy: true,
		books:   make(map[schema.MarketID]schema.BookSnapshot),
		subs:    make(map[schema.MarketID]chan schema.BookSnapshot),
		fills:   make(chan schema.Fill, 256),
		fillDelay: func(schema.OrderIntent) (schema.OrderAckStatus, schema.OrderAckReason) {
			return schema.OrderAckStatusFilled, schema.OrderAckReasonNone
		},
	}
}

func (s *SimAdapter) VenueID() schema.VenueID { return s.id }

func (s *SimAdapter) Start(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func (s *SimAdapter) Subscribe(ctx context.Context, market schema.MarketID) (<-chan schema.BookSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.subs[market]
	if !ok {
		ch = make(chan schema.BookSnapshot, 64)
		s.subs[market] = ch
	}
	if snap, ok := s.books[market]; ok {
		select {
		case ch <- snap:
		default:
		}
	}
	return ch, nil
}

func (s *SimAdapter) Unsubscribe(market schema.MarketID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.subs[market]; ok {
		close(ch)
		delete(s.subs, market)
	}
	return nil
}

// PushBook injects a book snapshot as if it arrived over the wire.
func (s *SimAdapter) PushBook(snap schema.BookSnapshot) {
	s.mu.Lock()
	s.books[snap.MarketID] = snap
	ch := s.subs[snap.MarketID]
	s.mu.Unlock()
	if ch != nil {
		select {
		case ch <- snap:
		default:
		}
	}
}

// SetHealthy forces the adapter's health state, for exercising
// VenueDown/VenueUp transitions in tests.
func (s *SimAdapter) SetHealthy(v bool) {
	s.mu.Lock()
	s.healthy = v
	s.mu.Unlock()
}

func (s *SimAdapter) Healthy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.healthy
}

// SetFillBehavior overrides how PlaceTaker resolves, for scripting S2
// (hedge timeout) and S6 (adverse-move unwind) style scenarios.
func (s *SimAdapter) SetFillBehavior(f func(schema.OrderIntent) (schema.OrderAckStatus, schema.OrderAckReason)) {
	s.mu.Lock()
	s.fillDelay = f
	s.mu.Unlock()
}

func (s *SimAdapter) PlaceTaker(intent schema.OrderIntent) (schema.OrderAck, error) {
	if !s.Healthy() {
		return schema.OrderAck{
			VenueID:  s.id,
			MarketID: intent.MarketID,
			Status:   schema.OrderAckStatusRejected,
			Reason:   schema.OrderAckReasonVenueUnavailable,
		}, nil
	}
	orderID := s.nextOrder.Add(1)
	s.mu.Lock()
	behavior := s.fillDelay
	s.mu.Unlock()
	status, reason := behavior(intent)

	ack := schema.OrderAck{
		OrderID:  orderID,
		VenueID:  s.id,
		MarketID: intent.MarketID,
		Status:   status,
		Reason:   reason,
		Price:    intent.Price,
		Qty:      intent.Qty,
	}
	if status == schema.OrderAckStatusFilled {
		ack.LeavesQty = 0
		select {
		case s.fills <- schema.Fill{OrderID: orderID, VenueID: s.id, MarketID: intent.MarketID, Side: intent.Side, Price: intent.Price, Qty: intent.Qty}:
		default:
		}
	} else {
		ack.LeavesQty = intent.Qty
	}
	return ack, nil
}

func (s *SimAdapter) Cancel(venueID schema.VenueID, orderID uint64) error {
	if venueID != s.id {
		return internalerrors.NewKind(internalerrors.ProgrammerError, "sim: venue mismatch")
	}
	return nil
}

func (s *SimAdapter) Fills() <-chan schema.Fill { return s.fills }

var _ Adapter = (*SimAdapter)(nil)
