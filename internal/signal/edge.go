// Package signal implements the Signal Engine: fee/friction-aware edge
// computation over matched pairs, and lead-lag routing hints derived from
// cross-venue mid-price cross-correlation.
package signal

import (
	"main/internal/schema"
)

// FullCents is the settlement value of a winning binary contract.
const FullCents = 100

// Quote computes the best available EdgeQuote for a pair given both
// venues' current books, or reports infeasible if depth is insufficient
// on every package. qty is the target contract count to fill on each leg.
func Quote(pair schema.Pair, bookA, bookB schema.BookSnapshot, feeA, feeB schema.FeePack, qty schema.Quantity, nowMs int64, traceID uint64) (schema.EdgeQuote, bool) {
	candA, okA := evaluatePackage(schema.PackageAYesBNo, bookA.Asks, bookB.Asks, feeA, feeB, qty)
	candB, okB := evaluatePackage(schema.PackageBYesANo, bookB.Asks, bookA.Asks, feeB, feeA, qty)

	var best schema.EdgeQuote
	found := false
	if okA {
		best = candA
		found = true
	}
	if okB && (!found || candB.NetEdgeCents > best.NetEdgeCents) {
		best = candB
		found = true
	}
	if !found {
		return schema.EdgeQuote{}, false
	}
	best.PairID = pair.ID
	best.TsMs = nowMs
	best.TraceID = traceID
	return best, true
}

// evaluatePackage computes the net edge of buying the YES leg by walking
// yesAsks and the NO leg by walking noAsks, each to qty contracts.
func evaluatePackage(pkg schema.Package, yesAsks, noAsks []schema.Level, feeYes, feeNo schema.FeePack, qty schema.Quantity) (schema.EdgeQuote, bool) {
	vwapYes, filledYes := vwap(yesAsks, qty)
	vwapNo, filledNo := vwap(noAsks, qty)
	if !filledYes || !filledNo {
		return schema.EdgeQuote{}, false
	}

	grossEdge := schema.Price(FullCents) - (vwapYes + vwapNo)

	feesCents := takerFee(vwapYes, qty, feeYes) + takerFee(vwapNo, qty, feeNo)
	frictionCents := feeYes.FrictionCents + feeNo.FrictionCents
	slippageCents := (vwapYes - yesAsks[0].Price) + (vwapNo - noAsks[0].Price)

	netEdge := grossEdge - feesCents - frictionCents - slippageCents

	return schema.EdgeQuote{
		Package:        pkg,
		GrossEdgeCents: grossEdge,
		FeesCents:      feesCents,
		FrictionCents:  frictionCents,
		SlippageCents:  slippageCents,
		NetEdgeCents:   netEdge,
	}, true
}

// vwap walks best-first ask levels until qty contracts are accumulated,
// returning the volume-weighted average price rounded to whole cents and
// whether enough depth existed.
func vwap(levels []schema.Level, qty schema.Quantity) (schema.Price, bool) {
	if qty <= 0 {
		return 0, false
	}
	var remaining = qty
	var costCents int64
	for _, lvl := range levels {
		take := lvl.Quantity
		if take > remaining {
			take = remaining
		}
		costCents += int64(lvl.Price) * int64(take)
		remaining -= take
		if remaining <= 0 {
			break
		}
	}
	if remaining > 0 {
		return 0, false
	}
	avg := costCents / int64(qty)
	if costCents%int64(qty) != 0 {
		avg++ // round up: never understate cost
	}
	return schema.Price(avg), true
}

// takerFee applies a fee pack's taker bps to a leg's notional, plus its
// profit-fee bps on the leg's payoff if it settles in the money
// (FullCents - px), rounded per the fee pack's rounding rule. The profit
// fee is conditional: a leg quoted at or above FullCents carries no
// profit to tax.
func takerFee(px schema.Price, qty schema.Quantity, fp schema.FeePack) schema.Price {
	notional := int64(px) * int64(qty)
	fee := round(notional*fp.TakerBps, 10000, fp.RoundingRule)

	if profit := int64(FullCents-px) * int64(qty); profit > 0 && fp.ProfitFeeBps > 0 {
		fee += round(profit*fp.ProfitFeeBps, 10000, fp.RoundingRule)
	}

	return schema.Price(fee) / schema.Price(qty)
}

func round(numer, denom int64, rule schema.RoundingRule) int64 {
	q := numer / denom
	r := numer % denom
	if r == 0 {
		return q
	}
	switch rule {
	case schema.RoundUp:
		return q + 1
	case schema.RoundDown:
		return q
	default:
		if r*2 >= denom {
			return q + 1
		}
		return q
	}
}
