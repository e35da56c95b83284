// Package risk implements the Risk/Admission Controller: eight ordered
// hard predicates gating every EdgeQuote before it becomes an
// ExecutionIntent.
package risk

import (
	"main/internal/schema"
)

const maxInt64 = int64(^uint64(0) >> 1)

// Config holds the risk controller's runtime-tunable defaults
// with defaults matching the documented risk-admission knobs.
type Config struct {
	MinNetEdgeCents          schema.Price   `json:"minNetEdgeCents"`
	FreshnessBudgetMs        int64          `json:"freshnessBudgetMs"`
	PairsMax                 int            `json:"pairsMax"`
	VenueNotionalCapCents    schema.Notional `json:"venueNotionalCapCents"`
	ContractExposureCapCents schema.Notional `json:"contractExposureCapCents"`
	DailyStopPct             float64        `json:"dailyStopPct"`
	WeeklyStopPct            float64        `json:"weeklyStopPct"`
	MonthlyStopPct           float64        `json:"monthlyStopPct"`
	MinHedgeProbability      float64        `json:"minHedgeProbability"`
}

// DefaultConfig returns the documented risk-admission defaults.
func DefaultConfig() Config {
	return Config{
		MinNetEdgeCents:          3, // 2.5 cents rounded up to whole-cent Price units
		FreshnessBudgetMs:        2000,
		PairsMax:                 8,
		VenueNotionalCapCents:    500000, // $5000.00 in whole cents
		ContractExposureCapCents: 25000,  // $250.00 in whole cents
		DailyStopPct:             0.01,
		WeeklyStopPct:            0.03,
		MonthlyStopPct:           0.05,
		MinHedgeProbability:      0.99,
	}
}

// StateView is the live state the controller checks an EdgeQuote against.
// It is assembled fresh by the caller on every evaluation; the engine
// itself is stateless aside from its Config.
type StateView struct {
	NowMs                  int64
	BookAAgeMs             int64
	BookBAgeMs             int64
	VenueAHealthy          bool
	VenueBHealthy          bool
	ConcurrentHedgesOnPair int
	ActivePairsCount       int
	VenueANotional         schema.Notional
	VenueBNotional         schema.Notional
	ProposedNotionalA      schema.Notional
	ProposedNotionalB      schema.Notional
	ContractExposure       schema.Notional
	ProposedContractNotl   schema.Notional
	DailyPnLPct            float64
	WeeklyPnLPct           float64
	MonthlyPnLPct          float64
	HedgeProbability       float64
}

// Engine evaluates admission decisions.
type Engine struct {
	cfg Config
}

// NewEngine creates a risk engine with static limits.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Evaluate runs the eight ordered hard predicates against an EdgeQuote,
// returning the first failing reason or RiskActionAllow.
func (e *Engine) Evaluate(quote schema.EdgeQuote, state StateView) schema.RiskDecision {
	decision := schema.RiskDecision{
		PairID:       quote.PairID,
		Package:      quote.Package,
		Action:       schema.RiskActionAllow,
		Reason:       schema.RiskReasonNone,
		NetEdgeCents: quote.NetEdgeCents,
		TraceID:      quote.TraceID,
		TsMs:         state.NowMs,
	}

	if quote.NetEdgeCents < e.cfg.MinNetEdgeCents {
		return deny(decision, schema.RiskReasonMinNetEdge)
	}

	if state.BookAAgeMs > e.cfg.FreshnessBudgetMs || state.BookBAgeMs > e.cfg.FreshnessBudgetMs {
		return deny(decision, schema.RiskReasonFreshness)
	}
	if !state.VenueAHealthy || !state.VenueBHealthy {
		return deny(decision, schema.RiskReasonVenueHealth)
	}

	if state.ConcurrentHedgesOnPair > 0 {
		return deny(decision, schema.RiskReasonConcurrentHedge)
	}

	if e.cfg.PairsMax > 0 && state.ActivePairsCount >= e.cfg.PairsMax {
		return deny(decision, schema.RiskReasonPairsMax)
	}

	if e.cfg.VenueNotionalCapCents > 0 {
		if capExceeded(state.VenueANotional, state.ProposedNotionalA, e.cfg.VenueNotionalCapCents) ||
			capExceeded(state.VenueBNotional, state.ProposedNotionalB, e.cfg.VenueNotionalCapCents) {
			return deny(decision, schema.RiskReasonVenueNotionalCap)
		}
	}

	if e.cfg.ContractExposureCapCents > 0 {
		if capExceeded(state.ContractExposure, state.ProposedContractNotl, e.cfg.ContractExposureCapCents) {
			return deny(decision, schema.RiskReasonContractExposureCap)
		}
	}

	if e.cfg.DailyStopPct > 0 && state.DailyPnLPct <= -e.cfg.DailyStopPct {
		return deny(decision, schema.RiskReasonPnLStop)
	}
	if e.cfg.WeeklyStopPct > 0 && state.WeeklyPnLPct <= -e.cfg.WeeklyStopPct {
		return deny(decision, schema.RiskReasonPnLStop)
	}
	if e.cfg.MonthlyStopPct > 0 && state.MonthlyPnLPct <= -e.cfg.MonthlyStopPct {
		return deny(decision, schema.RiskReasonPnLStop)
	}

	if e.cfg.MinHedgeProbability > 0 && state.HedgeProbability < e.cfg.MinHedgeProbability {
		return deny(decision, schema.RiskReasonHedgeProbability)
	}

	return decision
}

func deny(decision schema.RiskDecision, reason schema.RiskReason) schema.RiskDecision {
	decision.Action = schema.RiskActionDeny
	decision.Reason = reason
	return decision
}

// capExceeded reports whether current+proposed notional would cross cap,
// treating a sum that would overflow int64 as exceeding it.
func capExceeded(current, proposed, cap schema.Notional) bool {
	c := int64(current)
	p := int64(proposed)
	if p < 0 {
		p = -p
	}
	if c < 0 {
		c = -c
	}
	if c > maxInt64-p {
		return true
	}
	return c+p > int64(cap)
}
