package og

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/schema"
)

func TestStateMachineApplyIntentThenAckThenFill(t *testing.T) {
	sm := NewStateMachine()

	intent := schema.OrderIntent{
		OrderID:  1,
		VenueID:  1,
		MarketID: 100,
		Side:     schema.OrderSideYes,
		Price:    50,
		Qty:      10,
	}
	order, err := sm.ApplyIntent(intent)
	require.NoError(t, err)
	assert.Equal(t, OrderStateSent, order.State)
	assert.Equal(t, schema.Quantity(10), order.LeavesQty)

	_, err = sm.ApplyIntent(intent)
	assert.ErrorIs(t, err, ErrDuplicateOrder)

	ack := schema.OrderAck{OrderID: 1, VenueID: 1, MarketID: 100, Status: schema.OrderAckStatusAcked, Qty: 10, LeavesQty: 10}
	order, err = sm.ApplyAck(ack)
	require.NoError(t, err)
	assert.Equal(t, OrderStateAcked, order.State)

	fill := schema.Fill{OrderID: 1, VenueID: 1, MarketID: 100, Side: schema.OrderSideYes, Price: 50, Qty: 10}
	order, err = sm.ApplyFill(fill)
	require.NoError(t, err)
	assert.Equal(t, OrderStateFilled, order.State)
	assert.Equal(t, schema.Quantity(0), order.LeavesQty)

	_, err = sm.ApplyFill(fill)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestStateMachinePartialFill(t *testing.T) {
	sm := NewStateMachine()
	intent := schema.OrderIntent{OrderID: 2, VenueID: 1, MarketID: 100, Qty: 10}
	_, err := sm.ApplyIntent(intent)
	require.NoError(t, err)

	order, err := sm.ApplyFill(schema.Fill{OrderID: 2, Qty: 4})
	require.NoError(t, err)
	assert.Equal(t, OrderStatePartFilled, order.State)
	assert.Equal(t, schema.Quantity(6), order.LeavesQty)

	order, err = sm.ApplyFill(schema.Fill{OrderID: 2, Qty: 6})
	require.NoError(t, err)
	assert.Equal(t, OrderStateFilled, order.State)
}

func TestStateMachineUnknownOrder(t *testing.T) {
	sm := NewStateMachine()
	_, err := sm.ApplyAck(schema.OrderAck{OrderID: 999})
	assert.ErrorIs(t, err, ErrUnknownOrder)
	_, err = sm.ApplyFill(schema.Fill{OrderID: 999})
	assert.ErrorIs(t, err, ErrUnknownOrder)
}

func TestStateMachineRejectIsTerminal(t *testing.T) {
	sm := NewStateMachine()
	_, err := sm.ApplyIntent(schema.OrderIntent{OrderID: 3, Qty: 5})
	require.NoError(t, err)

	order, err := sm.ApplyAck(schema.OrderAck{OrderID: 3, Status: schema.OrderAckStatusRejected})
	require.NoError(t, err)
	assert.Equal(t, OrderStateRejected, order.State)

	_, err = sm.ApplyAck(schema.OrderAck{OrderID: 3, Status: schema.OrderAckStatusAcked})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
