package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"main/internal/codec"
	"main/internal/recorder"
	"main/internal/schema"
)

func main() {
	dir := flag.String("dir", "testdata/wal", "WAL directory")
	prefix := flag.String("prefix", "", "WAL file prefix (default: wal)")
	speed := flag.Float64("speed", 0, "Playback speed (1=real-time, 0=no pacing)")
	useRecv := flag.Bool("use-recv-time", false, "Use receive timestamp for pacing")
	noChecksum := flag.Bool("no-checksum", false, "Disable checksum validation")
	maxPayload := flag.Int("max-payload", 0, "Max payload size in bytes (0=unlimited)")
	decode := flag.Bool("decode", false, "Decode known payload types")
	flag.Parse()

	cfg := recorder.PlaybackConfig{
		Dir:             *dir,
		FilePrefix:      *prefix,
		Speed:           *speed,
		UseRecvTime:     *useRecv,
		DisableChecksum: *noChecksum,
		MaxPayloadSize:  *maxPayload,
	}
	pb, err := recorder.NewPlayback(cfg)
	if err != nil {
		log.Fatalf("playback init failed: %v", err)
	}

	ctx := context.Background()
	var index int
	err = pb.Run(ctx, func(header schema.EventHeader, payload []byte) error {
		index++
		fmt.Printf("%06d seq=%d type=%s ts_event=%d ts_recv=%d len=%d\n", index, header.Seq, eventTypeName(header.Type), header.TsEvent, header.TsRecv, len(payload))
		if *decode {
			printDecoded(header.Type, payload)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("playback run failed: %v", err)
	}
}

func eventTypeName(t schema.EventType) string {
	switch t {
	case schema.EventMarketData:
		return "MarketData"
	case schema.EventOrderIntent:
		return "OrderIntent"
	case schema.EventOrderAck:
		return "OrderAck"
	case schema.EventFill:
		return "Fill"
	case schema.EventRiskDecision:
		return "RiskDecision"
	case schema.EventStrategyDecision:
		return "StrategyDecision"
	case schema.EventEdgeComputed:
		return "EdgeComputed"
	case schema.EventIntentAdmitted:
		return "IntentAdmitted"
	case schema.EventIntentRejected:
		return "IntentRejected"
	case schema.EventLegFilled:
		return "LegFilled"
	case schema.EventTradeSettled:
		return "TradeSettled"
	case schema.EventTradeUnwound:
		return "TradeUnwound"
	case schema.EventTradeFailed:
		return "TradeFailed"
	case schema.EventVenueDown:
		return "VenueDown"
	case schema.EventVenueUp:
		return "VenueUp"
	case schema.EventHaltRequested:
		return "HaltRequested"
	case schema.EventResumeRequested:
		return "ResumeRequested"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

func printDecoded(t schema.EventType, payload []byte) {
	switch t {
	case schema.EventMarketData:
		snap, ok := codec.DecodeBookSnapshot(payload)
		if !ok {
			fmt.Println("  decode BookSnapshot failed")
			return
		}
		fmt.Printf("  book venue=%d market=%d seq=%d bids=%d asks=%d\n",
			snap.VenueID, snap.MarketID, snap.SequenceNo, len(snap.Bids), len(snap.Asks))
	case schema.EventOrderIntent:
		order, ok := codec.DecodeOrderIntent(payload)
		if !ok {
			fmt.Println("  decode OrderIntent failed")
			return
		}
		fmt.Printf("  order id=%d venue=%d market=%d side=%d type=%d tif=%d price=%d qty=%d\n",
			order.OrderID, order.VenueID, order.MarketID, order.Side, order.Type, order.TimeInForce, order.Price, order.Qty)
	case schema.EventOrderAck:
		ack, ok := codec.DecodeOrderAck(payload)
		if !ok {
			fmt.Println("  decode OrderAck failed")
			return
		}
		fmt.Printf("  ack id=%d venue=%d market=%d status=%d reason=%d price=%d qty=%d leaves=%d\n",
			ack.OrderID, ack.VenueID, ack.MarketID, ack.Status, ack.Reason, ack.Price, ack.Qty, ack.LeavesQty)
	case schema.EventRiskDecision:
		decision, ok := codec.DecodeRiskDecision(payload)
		if !ok {
			fmt.Println("  decode RiskDecision failed")
			return
		}
		fmt.Printf("  risk pair=%d package=%d action=%d reason=%d net_edge=%d trace=%d\n",
			decision.PairID, decision.Package, decision.Action, decision.Reason, decision.NetEdgeCents, decision.TraceID)
	case schema.EventFill, schema.EventLegFilled:
		fill, ok := codec.DecodeFill(payload)
		if !ok {
			fmt.Println("  decode Fill failed")
			return
		}
		fmt.Printf("  fill order=%d venue=%d market=%d side=%d price=%d qty=%d fee=%d\n",
			fill.OrderID, fill.VenueID, fill.MarketID, fill.Side, fill.Price, fill.Qty, fill.Fee)
	case schema.EventEdgeComputed:
		q, ok := codec.DecodeEdgeQuote(payload)
		if !ok {
			fmt.Println("  decode EdgeQuote failed")
			return
		}
		fmt.Printf("  edge pair=%d package=%d leader=%d gross=%d fees=%d net=%d\n",
			q.PairID, q.Package, q.Leader, q.GrossEdgeCents, q.FeesCents, q.NetEdgeCents)
	case schema.EventIntentAdmitted:
		intent, ok := codec.DecodeExecutionIntent(payload)
		if !ok {
			fmt.Println("  decode ExecutionIntent failed")
			return
		}
		fmt.Printf("  intent id=%d pair=%d package=%d qty=%d deadline=%d\n",
			intent.IntentID, intent.PairID, intent.Package, intent.Qty, intent.DeadlineMs)
	case schema.EventTradeSettled, schema.EventTradeUnwound, schema.EventTradeFailed:
		rec, ok := codec.DecodeTradeRecord(payload)
		if !ok {
			fmt.Println("  decode TradeRecord failed")
			return
		}
		fmt.Printf("  trade id=%d intent=%d pair=%d outcome=%d pnl=%d\n",
			rec.TradeID, rec.IntentID, rec.PairID, rec.Outcome, rec.RealizedPnLCents)
	case schema.EventHaltRequested, schema.EventResumeRequested:
		cmd, ok := codec.DecodeHaltCommand(payload)
		if !ok {
			fmt.Println("  decode HaltCommand failed")
			return
		}
		fmt.Printf("  control venue=%d halted=%t operator=%s reason=%q\n",
			cmd.VenueID, cmd.Halted, cmd.Operator, cmd.Reason)
	default:
		return
	}
}
