package venue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/schema"
)

func TestSimAdapterPlaceTakerFillsByDefault(t *testing.T) {
	sim := NewSimAdapter(7)
	ack, err := sim.PlaceTaker(schema.OrderIntent{MarketID: 1, Price: 50, Qty: 10, Side: schema.OrderSideYes})
	require.NoError(t, err)
	assert.Equal(t, schema.OrderAckStatusFilled, ack.Status)
	assert.Equal(t, schema.VenueID(7), ack.VenueID)
	assert.Equal(t, schema.Quantity(0), ack.LeavesQty)

	select {
	case fill := <-sim.Fills():
		assert.Equal(t, schema.Price(50), fill.Price)
		assert.Equal(t, schema.Quantity(10), fill.Qty)
	default:
		t.Fatal("expected a fill to be published")
	}
}

func TestSimAdapterRejectsWhenUnhealthy(t *testing.T) {
	sim := NewSimAdapter(1)
	sim.SetHealthy(false)
	ack, err := sim.PlaceTaker(schema.OrderIntent{MarketID: 1, Qty: 1})
	require.NoError(t, err)
	assert.Equal(t, schema.OrderAckStatusRejected, ack.Status)
	assert.Equal(t, schema.OrderAckReasonVenueUnavailable, ack.Reason)
}

func TestSimAdapterCustomFillBehavior(t *testing.T) {
	sim := NewSimAdapter(1)
	sim.SetFillBehavior(func(schema.OrderIntent) (schema.OrderAckStatus, schema.OrderAckReason) {
		return schema.OrderAckStatusRejected, schema.OrderAckReasonRiskReject
	})
	ack, err := sim.PlaceTaker(schema.OrderIntent{MarketID: 1, Qty: 1})
	require.NoError(t, err)
	assert.Equal(t, schema.OrderAckStatusRejected, ack.Status)
	assert.Equal(t, schema.OrderAckReasonRiskReject, ack.Reason)

	select {
	case <-sim.Fills():
		t.Fatal("rejected order should not publish a fill")
	default:
	}
}

func TestSimAdapterCancelVenueMismatch(t *testing.T) {
	sim := NewSimAdapter(1)
	assert.NoError(t, sim.Cancel(1, 5))
	assert.Error(t, sim.Cancel(2, 5))
}

func TestSimAdapterPushBookAndSubscribe(t *testing.T) {
	sim := NewSimAdapter(1)
	snap := schema.BookSnapshot{VenueID: 1, MarketID: 42, SequenceNo: 1}
	sim.PushBook(snap)

	ch, err := sim.Subscribe(context.Background(), 42)
	require.NoError(t, err)
	select {
	case got := <-ch:
		assert.Equal(t, snap, got)
	default:
		t.Fatal("expected the last pushed book on subscribe")
	}

	require.NoError(t, sim.Unsubscribe(42))
}
