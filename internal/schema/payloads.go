package schema

// Price is a scaled integer number of cents. The scale is defined by
// configuration (ScaleSpec.PriceScale), matching the venue's tick size.
type Price int64

// Quantity is a scaled integer contract count.
type Quantity int64

// Notional is a scaled integer, Price*Quantity in the venue's terms.
type Notional int64

// Fee is a scaled integer number of cents.
type Fee int64

// MarketID identifies a single tradable binary-options contract on one
// venue. It is the same numeric space as SymbolID: a Market is a Symbol
// scoped to a venue.
type MarketID = SymbolID

// PairID identifies a matched pair of markets across two venues.
type PairID uint32

// Package identifies which combination of legs a hedge trades.
type Package uint8

const (
	PackageUnknown Package = iota
	// PackageAYesBNo buys YES on venue A and NO on venue B.
	PackageAYesBNo
	// PackageBYesANo buys YES on venue B and NO on venue A.
	PackageBYesANo
)

// Leader identifies which venue's book has been leading the other in the
// rolling cross-correlation window, or none if no stable lead exists.
type Leader uint8

const (
	LeaderNone Leader = iota
	LeaderA
	LeaderB
)

// Level is a single price/quantity point in an order book.
type Level struct {
	Price    Price
	Quantity Quantity
}

// BookSnapshot is a single-sided-consistent view of a market's order book
// at a point in time, best-first on both sides.
type BookSnapshot struct {
	VenueID    VenueID
	MarketID   MarketID
	SequenceNo uint64
	VenueTsMs  int64
	RecvTsMs   int64
	Bids       []Level
	Asks       []Level
}

// BestBid returns the top of book bid, or false if the book is empty.
func (b BookSnapshot) BestBid() (Level, bool) {
	if len(b.Bids) == 0 {
		return Level{}, false
	}
	return b.Bids[0], true
}

// BestAsk returns the top of book ask, or false if the book is empty.
func (b BookSnapshot) BestAsk() (Level, bool) {
	if len(b.Asks) == 0 {
		return Level{}, false
	}
	return b.Asks[0], true
}

// RoundingRule describes how fractional-cent fee results are rounded.
type RoundingRule uint8

const (
	RoundNearest RoundingRule = iota
	RoundUp
	RoundDown
)

// FeePack is an immutable, versioned snapshot of a venue's fee schedule.
// A new FeePack is published as a fresh value on every change; existing
// holders keep using the version they read (copy-on-write).
type FeePack struct {
	VenueID       VenueID
	Version       uint32
	TakerBps      int64
	MakerBps      int64
	ProfitFeeBps  int64
	RoundingRule  RoundingRule
	FrictionCents Price
}

// Market describes a single binary-options contract tradable on one venue.
type Market struct {
	ID         MarketID
	VenueID    VenueID
	QuestionID string
	Name       string
	Active     bool
}

// HardRules records the individual pass/fail outcome of each rule that
// gates a pair's activation, in addition to the aggregate similarity score.
type HardRules struct {
	SameResolutionSource bool
	SameCloseTimeWindow  bool
	BothBinary           bool
	TickSizeCompatible   bool
}

// AllPassed reports whether every hard rule passed.
func (h HardRules) AllPassed() bool {
	return h.SameResolutionSource && h.SameCloseTimeWindow && h.BothBinary && h.TickSizeCompatible
}

// Pair is a matched pair of markets across two venues considered
// candidates for hedged arbitrage.
type Pair struct {
	ID              PairID
	MarketA         MarketID
	VenueA          VenueID
	MarketB         MarketID
	VenueB          VenueID
	SimilarityScore float64
	Rules           HardRules
	Active          bool
	VersionHash     uint64
}

// EdgeQuote is the signal engine's computed opportunity for a pair at a
// point in time.
type EdgeQuote struct {
	PairID          PairID
	Package         Package
	GrossEdgeCents  Price
	FeesCents       Price
	FrictionCents   Price
	SlippageCents   Price
	NetEdgeCents    Price
	Leader          Leader
	TsMs            int64
	TraceID         uint64
}

// Position tracks accumulated exposure for one market on one venue.
type Position struct {
	VenueID  VenueID
	MarketID MarketID
	QtyYes   Quantity
	QtyNo    Quantity
	AvgPxYes Price
	AvgPxNo  Price
}

// OrderSide identifies which side of a binary contract an order trades.
type OrderSide uint16

const (
	OrderSideUnknown OrderSide = iota
	OrderSideYes
	OrderSideNo
)

// OrderType describes order type.
type OrderType uint16

const (
	OrderTypeUnknown OrderType = iota
	OrderTypeLimit
	OrderTypeMarket
)

// TimeInForce describes order time-in-force.
type TimeInForce uint16

const (
	TimeInForceUnknown TimeInForce = iota
	TimeInForceGTC
	TimeInForceIOC
	TimeInForceFOK
)

// OrderIntent is a single-leg order sent to a venue adapter.
type OrderIntent struct {
	OrderID     uint64
	TraceID     uint64
	IntentID    uint64
	VenueID     VenueID
	MarketID    MarketID
	Side        OrderSide
	Type        OrderType
	TimeInForce TimeInForce
	Flags       uint16
	Price       Price
	Qty         Quantity
}

// OrderAckStatus describes the outcome of an order acknowledgment.
type OrderAckStatus uint16

const (
	OrderAckStatusUnknown OrderAckStatus = iota
	OrderAckStatusAcked
	OrderAckStatusRejected
	OrderAckStatusCanceled
	OrderAckStatusExpired
	OrderAckStatusPartFilled
	OrderAckStatusFilled
)

// OrderAckReason describes the reason for an order acknowledgment.
type OrderAckReason uint16

const (
	OrderAckReasonNone OrderAckReason = iota
	OrderAckReasonExchangeReject
	OrderAckReasonRiskReject
	OrderAckReasonRateLimit
	OrderAckReasonInvalidPrice
	OrderAckReasonInvalidQty
	OrderAckReasonNotAllowed
	OrderAckReasonVenueUnavailable
)

// OrderAck is the venue adapter's response to an OrderIntent.
type OrderAck struct {
	OrderID   uint64
	VenueID   VenueID
	MarketID  MarketID
	Status    OrderAckStatus
	Reason    OrderAckReason
	Flags     uint16
	Price     Price
	Qty       Quantity
	LeavesQty Quantity
}

// Fill is a single leg execution report.
type Fill struct {
	OrderID  uint64
	VenueID  VenueID
	MarketID MarketID
	Side     OrderSide
	Flags    uint16
	Price    Price
	Qty      Quantity
	Fee      Fee
}

// RiskAction is the outcome of a risk decision.
type RiskAction uint16

const (
	RiskActionUnknown RiskAction = iota
	RiskActionAllow
	RiskActionDeny
)

// RiskReason names which of the eight admission predicates rejected an
// intent, or none if it was allowed.
type RiskReason uint16

const (
	RiskReasonNone RiskReason = iota
	RiskReasonMinNetEdge
	RiskReasonFreshness
	RiskReasonVenueHealth
	RiskReasonConcurrentHedge
	RiskReasonPairsMax
	RiskReasonVenueNotionalCap
	RiskReasonContractExposureCap
	RiskReasonPnLStop
	RiskReasonHedgeProbability
)

// RiskDecision is the admission controller's verdict on an EdgeQuote.
type RiskDecision struct {
	PairID       PairID
	Package      Package
	Action       RiskAction
	Reason       RiskReason
	NetEdgeCents Price
	TraceID      uint64
	TsMs         int64
}

// ExecutionIntent is the admitted, two-legged hedge order the execution
// engine drives through its state machine.
type ExecutionIntent struct {
	IntentID     uint64
	TraceID      uint64
	PairID       PairID
	Package      Package
	NetEdgeCents Price
	Qty          Quantity
	DeadlineMs   int64
	CreatedMs    int64
}

// TradeOutcome is the terminal result of a hedge attempt.
type TradeOutcome uint8

const (
	TradeOutcomeUnknown TradeOutcome = iota
	TradeOutcomeCommitted
	TradeOutcomeUnwound
	TradeOutcomeFailed
)

// TradeRecord is the append-only, terminal record of one hedge attempt.
type TradeRecord struct {
	TradeID          uint64
	IntentID         uint64
	TraceID          uint64
	PairID           PairID
	Package          Package
	Outcome          TradeOutcome
	RealizedPnLCents Price
	OpenedTsMs       int64
	ClosedTsMs       int64
}

// HaltCommand is an operator's halt or resume action against a venue,
// carrying the who/when/why an audit trail records alongside it.
type HaltCommand struct {
	VenueID  VenueID
	Halted   bool
	TsMs     int64
	Operator string
	Reason   string
}
