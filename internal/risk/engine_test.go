package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"main/internal/schema"
)

func healthyState() StateView {
	return StateView{
		VenueAHealthy: true, VenueBHealthy: true,
		HedgeProbability: 1,
	}
}

func TestEvaluateAllowsWithinLimits(t *testing.T) {
	e := NewEngine(DefaultConfig())
	quote := schema.EdgeQuote{NetEdgeCents: 10}
	d := e.Evaluate(quote, healthyState())
	assert.Equal(t, schema.RiskActionAllow, d.Action)
	assert.Equal(t, schema.RiskReasonNone, d.Reason)
}

func TestEvaluateDeniesBelowMinNetEdge(t *testing.T) {
	e := NewEngine(DefaultConfig())
	d := e.Evaluate(schema.EdgeQuote{NetEdgeCents: 1}, healthyState())
	assert.Equal(t, schema.RiskActionDeny, d.Action)
	assert.Equal(t, schema.RiskReasonMinNetEdge, d.Reason)
}

func TestEvaluateDeniesStaleBooks(t *testing.T) {
	e := NewEngine(DefaultConfig())
	state := healthyState()
	state.BookAAgeMs = e.cfg.FreshnessBudgetMs + 1
	d := e.Evaluate(schema.EdgeQuote{NetEdgeCents: 10}, state)
	assert.Equal(t, schema.RiskReasonFreshness, d.Reason)
}

func TestEvaluateDeniesUnhealthyVenue(t *testing.T) {
	e := NewEngine(DefaultConfig())
	state := healthyState()
	state.VenueBHealthy = false
	d := e.Evaluate(schema.EdgeQuote{NetEdgeCents: 10}, state)
	assert.Equal(t, schema.RiskReasonVenueHealth, d.Reason)
}

func TestEvaluateDeniesConcurrentHedge(t *testing.T) {
	e := NewEngine(DefaultConfig())
	state := healthyState()
	state.ConcurrentHedgesOnPair = 1
	d := e.Evaluate(schema.EdgeQuote{NetEdgeCents: 10}, state)
	assert.Equal(t, schema.RiskReasonConcurrentHedge, d.Reason)
}

func TestEvaluateDeniesPairsMax(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PairsMax = 1
	e := NewEngine(cfg)
	state := healthyState()
	state.ActivePairsCount = 1
	d := e.Evaluate(schema.EdgeQuote{NetEdgeCents: 10}, state)
	assert.Equal(t, schema.RiskReasonPairsMax, d.Reason)
}

func TestEvaluateDeniesVenueNotionalCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VenueNotionalCapCents = 100
	e := NewEngine(cfg)
	state := healthyState()
	state.VenueANotional = 90
	state.ProposedNotionalA = 20
	d := e.Evaluate(schema.EdgeQuote{NetEdgeCents: 10}, state)
	assert.Equal(t, schema.RiskReasonVenueNotionalCap, d.Reason)
}

func TestEvaluateDeniesContractExposureCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContractExposureCapCents = 100
	e := NewEngine(cfg)
	state := healthyState()
	state.ContractExposure = 90
	state.ProposedContractNotl = 20
	d := e.Evaluate(schema.EdgeQuote{NetEdgeCents: 10}, state)
	assert.Equal(t, schema.RiskReasonContractExposureCap, d.Reason)
}

func TestEvaluateDeniesPnLStop(t *testing.T) {
	e := NewEngine(DefaultConfig())
	state := healthyState()
	state.DailyPnLPct = -0.02
	d := e.Evaluate(schema.EdgeQuote{NetEdgeCents: 10}, state)
	assert.Equal(t, schema.RiskReasonPnLStop, d.Reason)
}

func TestEvaluateDeniesHedgeProbability(t *testing.T) {
	e := NewEngine(DefaultConfig())
	state := healthyState()
	state.HedgeProbability = 0.5
	d := e.Evaluate(schema.EdgeQuote{NetEdgeCents: 10}, state)
	assert.Equal(t, schema.RiskReasonHedgeProbability, d.Reason)
}

func TestCapExceededHandlesOverflowSafely(t *testing.T) {
	assert.True(t, capExceeded(schema.Notional(maxInt64-1), schema.Notional(10), schema.Notional(maxInt64)))
	assert.False(t, capExceeded(schema.Notional(10), schema.Notional(10), schema.Notional(100)))
}
