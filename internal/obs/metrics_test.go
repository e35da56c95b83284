package obs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/schema"
)

func TestObserveEventCountsByType(t *testing.T) {
	m := NewMetrics()
	m.ObserveEvent(schema.EventHeader{Type: schema.EventFill, TsEvent: 100, TsRecv: 140})
	m.ObserveEvent(schema.EventHeader{Type: schema.EventFill, TsEvent: 200, TsRecv: 250})
	m.ObserveEvent(schema.EventHeader{Type: schema.EventRiskDecision})

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.EventCounts[schema.EventFill])
	assert.Equal(t, uint64(1), snap.EventCounts[schema.EventRiskDecision])
	require.Equal(t, uint64(2), snap.EventLatency.Count)
	assert.Equal(t, 40*time.Millisecond, snap.EventLatency.Min)
	assert.Equal(t, 50*time.Millisecond, snap.EventLatency.Max)
}

func TestObserveEventIgnoresNegativeLatency(t *testing.T) {
	m := NewMetrics()
	m.ObserveEvent(schema.EventHeader{Type: schema.EventFill, TsEvent: 200, TsRecv: 100})
	snap := m.Snapshot()
	assert.Equal(t, uint64(0), snap.EventLatency.Count)
}

func TestIncRiskReasonCountsByReason(t *testing.T) {
	m := NewMetrics()
	m.IncRiskReason(schema.RiskReasonMinNetEdge)
	m.IncRiskReason(schema.RiskReasonMinNetEdge)
	m.IncRiskReason(schema.RiskReasonFreshness)

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.RiskReasonCounts[schema.RiskReasonMinNetEdge])
	assert.Equal(t, uint64(1), snap.RiskReasonCounts[schema.RiskReasonFreshness])
}

func TestQueueDropAndClosedCounters(t *testing.T) {
	m := NewMetrics()
	m.IncQueueDrop()
	m.IncQueueDrop()
	m.IncQueueClosed()

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.QueueDrops)
	assert.Equal(t, uint64(1), snap.QueueClosed)
}

func TestMetricsMethodsToleratesNilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveEvent(schema.EventHeader{})
		m.IncRiskReason(schema.RiskReasonNone)
		m.IncQueueDrop()
		m.IncQueueClosed()
		_ = m.Snapshot()
	})
}

func TestOrderFlowAndRiskEvalLatencyTracked(t *testing.T) {
	m := NewMetrics()
	m.ObserveOrderFlow(10 * time.Millisecond)
	m.ObserveOrderFlow(30 * time.Millisecond)
	m.ObserveRiskEval(5 * time.Millisecond)

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.OrderFlowLatency.Count)
	assert.Equal(t, 20*time.Millisecond, snap.OrderFlowLatency.Avg)
	assert.Equal(t, uint64(1), snap.RiskEvalLatency.Count)
}

func TestTraceGeneratorProducesMonotonicIDs(t *testing.T) {
	g := NewTraceGenerator(100)
	first := g.Next()
	second := g.Next()
	assert.Equal(t, uint64(101), first)
	assert.Equal(t, uint64(102), second)
}

func TestTraceGeneratorSeedsFromClockWhenZero(t *testing.T) {
	g := NewTraceGenerator(0)
	assert.NotZero(t, g.Next())
}

func TestTraceGeneratorNilReceiverReturnsZero(t *testing.T) {
	var g *TraceGenerator
	assert.Equal(t, uint64(0), g.Next())
}
