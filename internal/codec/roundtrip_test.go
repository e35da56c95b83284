package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/schema"
)

func TestEncodeDecodeOrderIntentRoundTrip(t *testing.T) {
	in := schema.OrderIntent{
		OrderID: 1, TraceID: 2, IntentID: 3,
		VenueID: 4, MarketID: 5,
		Side: schema.OrderSideYes, Type: schema.OrderTypeMarket, TimeInForce: schema.TimeInForceIOC,
		Flags: 7, Price: 100, Qty: 20,
	}
	buf := EncodeOrderIntent(nil, in)
	require.Len(t, buf, OrderIntentPayloadSize)
	out, ok := DecodeOrderIntent(buf)
	require.True(t, ok)
	assert.Equal(t, in, out)

	_, ok = DecodeOrderIntent(buf[:OrderIntentPayloadSize-1])
	assert.False(t, ok)
}

func TestEncodeDecodeOrderAckRoundTrip(t *testing.T) {
	in := schema.OrderAck{
		OrderID: 1, VenueID: 2, MarketID: 3,
		Status: schema.OrderAckStatusPartFilled, Reason: schema.OrderAckReasonNone,
		Flags: 9, Price: 55, Qty: 10, LeavesQty: 5,
	}
	buf := EncodeOrderAck(nil, in)
	require.Len(t, buf, OrderAckPayloadSize)
	out, ok := DecodeOrderAck(buf)
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestEncodeDecodeFillRoundTrip(t *testing.T) {
	in := schema.Fill{
		OrderID: 1, VenueID: 2, MarketID: 3, Side: schema.OrderSideNo,
		Flags: 1, Price: 48, Qty: 12, Fee: 3,
	}
	buf := EncodeFill(nil, in)
	require.Len(t, buf, FillPayloadSize)
	out, ok := DecodeFill(buf)
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestEncodeDecodeRiskDecisionRoundTrip(t *testing.T) {
	in := schema.RiskDecision{
		PairID: 1, Package: schema.PackageAYesBNo, Action: schema.RiskActionDeny,
		Reason: schema.RiskReasonMinNetEdge, NetEdgeCents: 4, TraceID: 9, TsMs: 123,
	}
	buf := EncodeRiskDecision(nil, in)
	require.Len(t, buf, RiskDecisionPayloadSize)
	out, ok := DecodeRiskDecision(buf)
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestEncodeDecodeEdgeQuoteRoundTrip(t *testing.T) {
	in := schema.EdgeQuote{
		PairID: 1, Package: schema.PackageBYesANo, Leader: schema.LeaderA,
		GrossEdgeCents: 10, FeesCents: 2, FrictionCents: 1, SlippageCents: 1,
		NetEdgeCents: 6, TraceID: 77, TsMs: 555,
	}
	buf := EncodeEdgeQuote(nil, in)
	require.Len(t, buf, EdgeQuotePayloadSize)
	out, ok := DecodeEdgeQuote(buf)
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestEncodeDecodeExecutionIntentRoundTrip(t *testing.T) {
	in := schema.ExecutionIntent{
		IntentID: 1, TraceID: 2, PairID: 3, Package: schema.PackageAYesBNo,
		NetEdgeCents: 5, Qty: 20, DeadlineMs: 1000, CreatedMs: 500,
	}
	buf := EncodeExecutionIntent(nil, in)
	require.Len(t, buf, ExecutionIntentPayloadSize)
	out, ok := DecodeExecutionIntent(buf)
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestEncodeDecodeTradeRecordRoundTrip(t *testing.T) {
	in := schema.TradeRecord{
		TradeID: 1, IntentID: 2, TraceID: 3, PairID: 4, Package: schema.PackageBYesANo,
		Outcome: schema.TradeOutcomeCommitted, RealizedPnLCents: 42,
		OpenedTsMs: 100, ClosedTsMs: 200,
	}
	buf := EncodeTradeRecord(nil, in)
	require.Len(t, buf, TradeRecordPayloadSize)
	out, ok := DecodeTradeRecord(buf)
	require.True(t, ok)
	assert.Equal(t, in, out)
}
