package venue

import (
	"context"

	"main/internal/schema"
)

// Venue composes a streaming adapter with a REST order client into the
// full Adapter capability set. Streaming and order placement are
// deliberately separate concerns (separate transports, separate failure
// domains) and are only joined here at the boundary.
type Venue struct {
	*StreamAdapter
	orders *RESTOrderer
}

// NewVenue joins a StreamAdapter and RESTOrderer for the same venue ID.
func NewVenue(stream *StreamAdapter, orders *RESTOrderer) *Venue {
	return &Venue{StreamAdapter: stream, orders: orders}
}

func (v *Venue) PlaceTaker(intent schema.OrderIntent) (schema.OrderAck, error) {
	if !v.Healthy() {
		return schema.OrderAck{
			VenueID:  v.VenueID(),
			MarketID: intent.MarketID,
			Status:   schema.OrderAckStatusRejected,
			Reason:   schema.OrderAckReasonVenueUnavailable,
		}, nil
	}
	return v.orders.PlaceTaker(intent)
}

func (v *Venue) Cancel(venueID schema.VenueID, orderID uint64) error {
	return v.orders.Cancel(venueID, orderID)
}

var _ Adapter = (*Venue)(nil)

// ensure the streaming half alone satisfies the subscribe/observe surface
// used directly by tests.
var _ interface {
	Subscribe(ctx context.Context, market schema.MarketID) (<-chan schema.BookSnapshot, error)
} = (*StreamAdapter)(nil)
