// Package venue implements the Venue Adapter capability set: streaming
// book subscription that drops stale and gap-revealing updates, taker order placement/cancellation,
// and reconnect/health signaling. Adapters are dispatched via an
// explicit capability interface, never duck-typed.
package venue

import (
	"context"

	"main/internal/schema"
)

// HealthEvent describes a flip in a venue's connectivity. No adapter in
// this package emits one; Adapter.Healthy reports the current state.
type HealthEvent struct {
	VenueID VenueEventSource
	Up      bool
	TsMs    int64
}

// VenueEventSource identifies which venue an event came from.
type VenueEventSource = schema.VenueID

// Adapter is the capability set every venue integration must implement.
// Callers dispatch against this interface explicitly; there is no
// reflection-based capability discovery.
type Adapter interface {
	// VenueID returns the adapter's venue identifier.
	VenueID() schema.VenueID

	// Start connects and begins streaming; it blocks until ctx is
	// canceled or a fatal error occurs, reconnecting internally with
	// bounded exponential backoff on transient failures.
	Start(ctx context.Context) error

	// Subscribe requests a book stream for a market. Snapshots arrive on
	// the returned channel, best-first on both sides, with a monotonic
	// SequenceNo per market. StreamAdapter drops stale or duplicate
	// sequences and the update that reveals a gap; it does not resubscribe
	// after a gap.
	Subscribe(ctx context.Context, market schema.MarketID) (<-chan schema.BookSnapshot, error)

	// Unsubscribe releases a market's book stream.
	Unsubscribe(market schema.MarketID) error

	// PlaceTaker sends a marketable order and returns the venue's ack.
	// While the venue is down, it returns a Rejection with reason
	// OrderAckReasonVenueUnavailable rather than blocking.
	PlaceTaker(intent schema.OrderIntent) (schema.OrderAck, error)

	// Cancel requests cancellation of a resting or in-flight order.
	Cancel(venue schema.VenueID, orderID uint64) error

	// Fills streams execution reports as they arrive.
	Fills() <-chan schema.Fill

	// Healthy reports whether the adapter currently considers the venue
	// connection usable for new admissions.
	Healthy() bool
}
