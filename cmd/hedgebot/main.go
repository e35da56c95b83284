// Command hedgebot runs the binary-options cross-venue hedge-arbitrage
// pipeline end to end: synthetic (or configured) venues feed the book
// cache, the signal engine scores pairs, the risk engine admits or denies
// each opportunity, and the execution engine drives admitted intents
// through the two-legged hedge state machine. Every event is durably
// logged to a WAL, with a replay mode that rebuilds positions from it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	pyroscope "github.com/grafana/pyroscope-go"
	"golang.org/x/sync/errgroup"

	"main/internal/bookcache"
	"main/internal/bus"
	"main/internal/chaos"
	"main/internal/codec"
	"main/internal/exec"
	"main/internal/mdg"
	"main/internal/obs"
	"main/internal/ops"
	"main/internal/recorder"
	"main/internal/registry"
	"main/internal/risk"
	"main/internal/schema"
	"main/internal/signal"
	"main/internal/state"
	"main/internal/store"
	"main/internal/venue"
)

const hedgebotSource uint16 = 1

func main() {
	walDir := flag.String("wal-dir", "testdata/wal", "WAL directory for recording")
	configPath := flag.String("config", "", "Path to JSON config (default: two-venue synthetic pair)")
	duration := flag.Duration("duration", 30*time.Second, "How long to run the paper-trading loop")
	tickInterval := flag.Duration("tick-interval", 200*time.Millisecond, "Synthetic book update interval")
	qty := flag.Int64("qty", 10, "Contract quantity per hedge attempt")
	snapshotPath := flag.String("snapshot-path", "", "Position snapshot output (default: <wal-dir>/positions.json)")

	replayDir := flag.String("replay-dir", "", "WAL directory to replay instead of running")
	replayPrefix := flag.String("replay-prefix", "", "WAL file prefix for replay (default: wal)")
	replaySnapshot := flag.String("replay-snapshot", "", "Snapshot path to seed replay recovery (default: <replay-dir>/positions.json)")
	profileServer := flag.String("pyroscope-server", "", "Pyroscope server address to push continuous profiles to (disabled if empty)")
	storeConnString := flag.String("store-conn", "", "PostgreSQL connection string for the durable trade/position store (disabled if empty)")
	memStatsInterval := flag.Duration("mem-stats-interval", 0, "Interval for logging runtime memory/GC stats (disabled if 0)")
	haltVenueSide := flag.String("halt-venue", "", "Operator drill: halt venue \"a\" or \"b\" mid-run (disabled if empty)")
	haltAtTick := flag.Int("halt-at-tick", -1, "Tick to issue the halt command at")
	resumeAtTick := flag.Int("resume-at-tick", -1, "Tick to issue the resume command at (-1: never resume)")
	haltOperator := flag.String("halt-operator", "oncall", "Operator name recorded in the halt/resume audit trail")
	haltReason := flag.String("halt-reason", "manual drill", "Reason recorded in the halt/resume audit trail")
	flag.Parse()

	if *profileServer != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "hedgebot",
			ServerAddress:   *profileServer,
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			log.Fatalf("pyroscope start failed: %v", err)
		}
		defer func() { _ = profiler.Stop() }()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *memStatsInterval > 0 {
		stats := &obs.RuntimeStats{}
		go stats.Run(ctx, *memStatsInterval)
	}

	if *replayDir != "" {
		if err := runReplay(ctx, *replayDir, *replayPrefix, resolveSnapshotPath(*replayDir, *replaySnapshot)); err != nil {
			log.Fatalf("replay failed: %v", err)
		}
		return
	}

	loaded, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	var tradeStore *store.Client
	if *storeConnString != "" {
		tradeStore, err = store.New(store.Option{ConnString: *storeConnString})
		if err != nil {
			log.Fatalf("store connect failed: %v", err)
		}
		defer tradeStore.Close()
	}

	snapshotOut := resolveSnapshotPath(*walDir, *snapshotPath)
	drill := haltDrill{
		side:       *haltVenueSide,
		haltTick:   *haltAtTick,
		resumeTick: *resumeAtTick,
		operator:   *haltOperator,
		reason:     *haltReason,
	}
	if err := runPaper(ctx, loaded, *walDir, *duration, *tickInterval, schema.Quantity(*qty), snapshotOut, tradeStore, drill); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}

// haltDrill schedules an operator halt/resume command against one venue
// mid-run, exercising the control surface end to end in paper trading.
type haltDrill struct {
	side       string // "a" or "b"; empty disables the drill
	haltTick   int
	resumeTick int
	operator   string
	reason     string
}

func loadConfig(path string) (ops.Loaded, error) {
	if path == "" {
		return defaultLoaded()
	}
	return ops.Load(path)
}

// defaultLoaded builds a runnable two-venue synthetic pair in place of a
// JSON config file, so the binary is demonstrable with no setup.
func defaultLoaded() (ops.Loaded, error) {
	reg := schema.NewRegistry()
	venueA, err := reg.AddVenue("alpha")
	if err != nil {
		return ops.Loaded{}, err
	}
	venueB, err := reg.AddVenue("beta")
	if err != nil {
		return ops.Loaded{}, err
	}
	scale := schema.ScaleSpec{}
	marketA, err := reg.AddSymbol("WILL-X-HAPPEN-A", venueA, scale)
	if err != nil {
		return ops.Loaded{}, err
	}
	marketB, err := reg.AddSymbol("WILL-X-HAPPEN-B", venueB, scale)
	if err != nil {
		return ops.Loaded{}, err
	}

	store := registry.New(reg)
	store.PutMarket(schema.Market{ID: marketA, VenueID: venueA, QuestionID: "Q-X", Name: "WILL-X-HAPPEN-A", Active: true})
	store.PutMarket(schema.Market{ID: marketB, VenueID: venueB, QuestionID: "Q-X", Name: "WILL-X-HAPPEN-B", Active: true})

	feeA := schema.FeePack{VenueID: venueA, Version: 1, TakerBps: 150, RoundingRule: schema.RoundNearest, FrictionCents: 1}
	feeB := schema.FeePack{VenueID: venueB, Version: 1, TakerBps: 150, RoundingRule: schema.RoundNearest, FrictionCents: 1}
	store.PutFeePack(feeA)
	store.PutFeePack(feeB)

	pairID, err := store.RegisterPair(marketA, marketB, venueA, venueB, 0.97, schema.HardRules{
		SameResolutionSource: true,
		SameCloseTimeWindow:  true,
		BothBinary:           true,
		TickSizeCompatible:   true,
	})
	if err != nil {
		return ops.Loaded{}, err
	}
	if err := store.SetPairActive(pairID, true); err != nil {
		return ops.Loaded{}, err
	}

	return ops.Loaded{
		Registry:     store,
		FeePacks:     map[schema.VenueID]schema.FeePack{venueA: feeA, venueB: feeB},
		Risk:         risk.DefaultConfig(),
		Exec:         exec.DefaultConfig(),
		BookDuration: bookcache.DefaultBarDurationMs,
		BookRetain:   bookcache.DefaultRetentionMs,
		BookEvict:    0,
		LeadLag:      *signal.NewLeadLagDetector(signal.DefaultWindowBars, signal.DefaultMaxLagBars),
		Features:     ops.FeatureFlags{EnableExecution: true, EnableChaos: false},
	}, nil
}

func resolveSnapshotPath(dir, path string) string {
	if path != "" {
		return path
	}
	return filepath.Join(dir, "positions.json")
}

// runPaper drives the full pipeline against a synthetic two-venue feed for
// the configured duration, recording every event to the WAL.
func runPaper(ctx context.Context, loaded ops.Loaded, walDir string, duration, tickInterval time.Duration, qty schema.Quantity, snapshotPath string, tradeStore *store.Client, drill haltDrill) error {
	pairs := loaded.Registry.ActivePairs()
	if len(pairs) == 0 {
		return fmt.Errorf("hedgebot: no active pairs configured")
	}
	pair := pairs[0]
	feeA, ok := loaded.FeePacks[pair.VenueA]
	if !ok {
		return fmt.Errorf("hedgebot: missing fee pack for venue %d", pair.VenueA)
	}
	feeB, ok := loaded.FeePacks[pair.VenueB]
	if !ok {
		return fmt.Errorf("hedgebot: missing fee pack for venue %d", pair.VenueB)
	}

	simA := venue.NewSimAdapter(pair.VenueA)
	simB := venue.NewSimAdapter(pair.VenueB)
	adapters := map[schema.VenueID]*venue.SimAdapter{pair.VenueA: simA, pair.VenueB: simB}
	dispatchers := map[schema.VenueID]exec.VenueDispatcher{pair.VenueA: simA, pair.VenueB: simB}

	cache := bookcache.New(loaded.BookDuration, loaded.BookRetain, loaded.BookEvict)
	riskEngine := risk.NewEngine(loaded.Risk)
	hedgeProb := risk.NewHedgeProbabilityEstimator(risk.DefaultHedgeProbabilityWindow)
	freshnessWatch := risk.NewFreshnessWatchdog(risk.DefaultFreshnessHaltThreshold)
	execEngine := exec.NewEngine(loaded.Exec, dispatchers)
	leadLag := loaded.LeadLag
	positions := state.NewPositionReducer()
	metrics := obs.NewMetrics()
	traceGen := obs.NewTraceGenerator(0)

	var chaosEngine *chaos.Engine
	if loaded.Features.EnableChaos {
		var err error
		chaosEngine, err = chaos.NewEngine(chaos.Config{DropRate: 0.02, DuplicateRate: 0.01, ReorderWindow: 4, MaxDelay: 50 * time.Millisecond})
		if err != nil {
			return err
		}
	}

	recCfg := recorder.DefaultConfig(walDir)
	writer, err := recorder.NewWriter(recCfg)
	if err != nil {
		return err
	}
	if err := writer.Start(ctx); err != nil {
		return err
	}

	critical := bus.NewQueue(1024)
	noncritical := bus.NewDropOldestQueue(4096)
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var firstErr error
		critical.Run(groupCtx, func(e bus.Event) {
			if err := writer.TryAppend(e.Header, e.Payload); err != nil && firstErr == nil {
				firstErr = err
			}
		})
		return firstErr
	})

	group.Go(func() error {
		var firstErr error
		noncritical.Run(groupCtx, func(e bus.Event) {
			events := []chaos.Event{{Header: e.Header, Payload: e.Payload}}
			if chaosEngine != nil {
				events = chaosProcess(chaosEngine, e)
			}
			for _, ev := range events {
				if err := writer.TryAppend(ev.Header, ev.Payload); err != nil && firstErr == nil {
					firstErr = err
				}
			}
		})
		return firstErr
	})

	var seq uint64
	var lastEventTs int64
	publish := func(pub func(bus.Event) error, eventType schema.EventType, tsMs int64, payload []byte, traceID uint64) {
		seq++
		header := schema.NewHeader(eventType, hedgebotSource, seq, tsMs, tsMs)
		header.TraceID = traceID
		lastEventTs = tsMs
		if err := pub(bus.Event{Header: header, Payload: payload}); err != nil {
			if errors.Is(err, bus.ErrQueueFull) {
				metrics.IncQueueDrop()
			} else if errors.Is(err, bus.ErrQueueClosed) {
				metrics.IncQueueClosed()
			}
			return
		}
		metrics.ObserveEvent(header)
	}

	gen := mdg.NewPairGenerator(mdg.PairSpec{
		MarketA:         pair.MarketA,
		MarketB:         pair.MarketB,
		VenueA:          pair.VenueA,
		VenueB:          pair.VenueB,
		StartPriceCents: 50,
		SpreadCents:     4,
		DepthQty:        schema.Quantity(qty * 20),
		LagBars:         2,
		NoiseCents:      1,
	}, 42)

	var drillVenue schema.VenueID
	var drillAdapter *venue.SimAdapter
	switch drill.side {
	case "a":
		drillVenue, drillAdapter = pair.VenueA, simA
	case "b":
		drillVenue, drillAdapter = pair.VenueB, simB
	}

	var orderCounter uint64
	nowMs := time.Now().UTC().UnixMilli()
	ticks := int(duration / tickInterval)
	tickMs := tickInterval.Milliseconds()
	settled, unwound, failed, rejected := 0, 0, 0, 0

	for i := 0; i < ticks; i++ {
		nowMs += tickMs
		bookA, bookB := gen.Next(nowMs)
		cache.Update(bookA)
		cache.Update(bookB)
		publish(noncritical.Publish, schema.EventMarketData, nowMs, codec.EncodeBookSnapshot(nil, bookA), 0)
		publish(noncritical.Publish, schema.EventMarketData, nowMs, codec.EncodeBookSnapshot(nil, bookB), 0)

		if drill.side != "" && i == drill.haltTick {
			execEngine.Halt(drillVenue, drill.operator, drill.reason, nowMs)
			cmd := schema.HaltCommand{VenueID: drillVenue, Halted: true, TsMs: nowMs, Operator: drill.operator, Reason: drill.reason}
			publish(critical.TryPublish, schema.EventHaltRequested, nowMs, codec.EncodeHaltCommand(nil, cmd), 0)
			log.Printf("operator halt: venue=%d operator=%s reason=%q", drillVenue, drill.operator, drill.reason)
		}
		if drill.side != "" && i == drill.resumeTick {
			if err := execEngine.Resume(drillVenue, drill.operator, drill.reason, drillAdapter.Healthy(), nowMs); err != nil {
				log.Printf("operator resume refused: %v", err)
			} else {
				cmd := schema.HaltCommand{VenueID: drillVenue, Halted: false, TsMs: nowMs, Operator: drill.operator, Reason: drill.reason}
				publish(critical.TryPublish, schema.EventResumeRequested, nowMs, codec.EncodeHaltCommand(nil, cmd), 0)
				log.Printf("operator resume: venue=%d operator=%s reason=%q", drillVenue, drill.operator, drill.reason)
			}
		}

		leader := leadLag.Evaluate(cache.Bars(pair.MarketA), cache.Bars(pair.MarketB))

		snapA, okA := cache.Latest(pair.MarketA, nowMs)
		snapB, okB := cache.Latest(pair.MarketB, nowMs)
		if !okA || !okB {
			continue
		}

		quote, ok := signal.Quote(pair, snapA, snapB, feeA, feeB, qty, nowMs, traceGen.Next())
		if !ok {
			continue
		}
		quote.Leader = leader
		publish(noncritical.Publish, schema.EventEdgeComputed, nowMs, codec.EncodeEdgeQuote(nil, quote), quote.TraceID)

		primaryVenue, hedgeVenue, primaryMarket, hedgeMarket, primaryPrice, hedgePrice := legsFor(quote.Package, pair, snapA, snapB)

		bookAAgeMs := nowMs - snapA.VenueTsMs
		bookBAgeMs := nowMs - snapB.VenueTsMs
		decision := riskEngine.Evaluate(quote, risk.StateView{
			NowMs:                  nowMs,
			BookAAgeMs:             bookAAgeMs,
			BookBAgeMs:             bookBAgeMs,
			VenueAHealthy:          simA.Healthy() && !execEngine.Halted(pair.VenueA),
			VenueBHealthy:          simB.Healthy() && !execEngine.Halted(pair.VenueB),
			ConcurrentHedgesOnPair: execEngine.LiveHedgeCountForPair(pair.ID),
			ActivePairsCount:       execEngine.LiveHedgePairCount(),
			HedgeProbability:       hedgeProb.Estimate(primaryVenue, hedgeVenue),
		})
		metrics.IncRiskReason(decision.Reason)
		publish(critical.TryPublish, schema.EventRiskDecision, nowMs, codec.EncodeRiskDecision(nil, decision), decision.TraceID)

		staleA := decision.Reason == schema.RiskReasonFreshness && bookAAgeMs > loaded.Risk.FreshnessBudgetMs
		staleB := decision.Reason == schema.RiskReasonFreshness && bookBAgeMs > loaded.Risk.FreshnessBudgetMs
		for _, v := range []struct {
			id    schema.VenueID
			stale bool
		}{{pair.VenueA, staleA}, {pair.VenueB, staleB}} {
			if !freshnessWatch.Observe(v.id, v.stale) || execEngine.Halted(v.id) {
				continue
			}
			const reason = "3 consecutive freshness denials"
			execEngine.Halt(v.id, "risk-engine", reason, nowMs)
			cmd := schema.HaltCommand{VenueID: v.id, Halted: true, TsMs: nowMs, Operator: "risk-engine", Reason: reason}
			publish(critical.TryPublish, schema.EventHaltRequested, nowMs, codec.EncodeHaltCommand(nil, cmd), 0)
			log.Printf("auto halt: venue=%d reason=%q", v.id, reason)
		}

		if decision.Action != schema.RiskActionAllow {
			rejected++
			publish(noncritical.Publish, schema.EventIntentRejected, nowMs, codec.EncodeRiskDecision(nil, decision), decision.TraceID)
			execEngine.Tick(nowMs, unwindHedge(dispatchers))
			continue
		}

		intentID := traceGen.Next()
		execIntent := schema.ExecutionIntent{
			IntentID:     intentID,
			TraceID:      quote.TraceID,
			PairID:       pair.ID,
			Package:      quote.Package,
			NetEdgeCents: quote.NetEdgeCents,
			Qty:          qty,
			DeadlineMs:   nowMs + loaded.Exec.HedgeTimeoutMs + loaded.Exec.UnwindBudgetMs,
			CreatedMs:    nowMs,
		}
		orderCounter++
		primaryIntent := schema.OrderIntent{
			OrderID: orderCounter, TraceID: quote.TraceID, IntentID: intentID,
			VenueID: primaryVenue, MarketID: primaryMarket, Side: schema.OrderSideYes,
			Type: schema.OrderTypeMarket, TimeInForce: schema.TimeInForceIOC,
			Price: primaryPrice, Qty: qty,
		}
		orderCounter++
		hedgeIntent := schema.OrderIntent{
			OrderID: orderCounter, TraceID: quote.TraceID, IntentID: intentID,
			VenueID: hedgeVenue, MarketID: hedgeMarket, Side: schema.OrderSideNo,
			Type: schema.OrderTypeMarket, TimeInForce: schema.TimeInForceIOC,
			Price: hedgePrice, Qty: qty,
		}

		publish(critical.TryPublish, schema.EventIntentAdmitted, nowMs, codec.EncodeExecutionIntent(nil, execIntent), quote.TraceID)
		publish(critical.TryPublish, schema.EventOrderIntent, nowMs, codec.EncodeOrderIntent(nil, primaryIntent), quote.TraceID)

		h, err := execEngine.Start(execIntent, primaryVenue, hedgeVenue, primaryIntent, hedgeIntent, nowMs)
		if err != nil {
			log.Printf("hedge start failed: %v", err)
			execEngine.Tick(nowMs, unwindHedge(dispatchers))
			continue
		}

		drainFills(adapters, positions, func(fill schema.Fill) {
			publish(critical.TryPublish, schema.EventLegFilled, nowMs, codec.EncodeFill(nil, fill), quote.TraceID)
		})

		outcome := schema.TradeOutcomeUnknown
		var eventType schema.EventType
		switch h.State {
		case exec.StateSettled:
			outcome, eventType = schema.TradeOutcomeCommitted, schema.EventTradeSettled
			settled++
			hedgeProb.Record(primaryVenue, true)
			hedgeProb.Record(hedgeVenue, true)
		case exec.StateUnwound:
			outcome, eventType = schema.TradeOutcomeUnwound, schema.EventTradeUnwound
			unwound++
			hedgeProb.Record(primaryVenue, false)
			hedgeProb.Record(hedgeVenue, false)
		case exec.StateFailed:
			outcome, eventType = schema.TradeOutcomeFailed, schema.EventTradeFailed
			failed++
			hedgeProb.Record(primaryVenue, false)
			hedgeProb.Record(hedgeVenue, false)
		default:
			execEngine.Tick(nowMs, unwindHedge(dispatchers))
			continue
		}
		rec := schema.TradeRecord{
			TradeID:          traceGen.Next(),
			IntentID:         execIntent.IntentID,
			TraceID:          execIntent.TraceID,
			PairID:           pair.ID,
			Package:          execIntent.Package,
			Outcome:          outcome,
			RealizedPnLCents: schema.Price(int64(execIntent.NetEdgeCents) * int64(qty)),
			OpenedTsMs:       nowMs,
			ClosedTsMs:       nowMs,
		}
		publish(critical.TryPublish, eventType, nowMs, codec.EncodeTradeRecord(nil, rec), quote.TraceID)
		if tradeStore != nil {
			if err := tradeStore.AppendTradeRecord(rec); err != nil {
				log.Printf("trade store append failed: %v", err)
			}
		}
		execEngine.Tick(nowMs, unwindHedge(dispatchers))
	}

	critical.Close()
	noncritical.Close()
	flowErr := group.Wait()

	if err := writer.Close(); err != nil {
		return err
	}
	if flowErr != nil {
		return flowErr
	}

	if snapshotPath != "" {
		snapshot := positions.SnapshotWithMeta(seq, lastEventTs)
		if err := state.WriteSnapshot(snapshotPath, snapshot); err != nil {
			return err
		}
		if tradeStore != nil {
			if err := tradeStore.SavePositionSnapshot(snapshot); err != nil {
				log.Printf("trade store snapshot save failed: %v", err)
			}
		}
	}

	snap := metrics.Snapshot()
	log.Printf("run complete: settled=%d unwound=%d failed=%d rejected=%d positions=%d", settled, unwound, failed, rejected, positions.Count())
	log.Printf("metrics: events=%v risk_reasons=%v drops=%d closed=%d", snap.EventCounts, snap.RiskReasonCounts, snap.QueueDrops, snap.QueueClosed)
	return nil
}

// legsFor resolves which venue/market/price plays the primary (YES) and
// hedge (NO) leg for a package.
func legsFor(pkg schema.Package, pair schema.Pair, snapA, snapB schema.BookSnapshot) (primaryVenue, hedgeVenue schema.VenueID, primaryMarket, hedgeMarket schema.MarketID, primaryPrice, hedgePrice schema.Price) {
	askA, _ := snapA.BestAsk()
	askB, _ := snapB.BestAsk()
	if pkg == schema.PackageBYesANo {
		return pair.VenueB, pair.VenueA, pair.MarketB, pair.MarketA, askB.Price, askA.Price
	}
	return pair.VenueA, pair.VenueB, pair.MarketA, pair.MarketB, askA.Price, askB.Price
}

// unwindHedge returns a Tick callback that flattens whichever leg of a
// hedge filled by canceling any resting order on that venue. Real venues
// may still have a resting order at unwind time; SimAdapter fills
// immediately so this is exercised primarily by real venue adapters.
func unwindHedge(dispatchers map[schema.VenueID]exec.VenueDispatcher) func(h *exec.Hedge) error {
	return func(h *exec.Hedge) error {
		target := h.PrimaryVenue()
		if !h.PrimaryFilled() && h.HedgeFilled() {
			target = h.HedgeVenue()
		}
		dispatcher, ok := dispatchers[target]
		if !ok {
			return fmt.Errorf("hedgebot: no dispatcher for venue %d", target)
		}
		return dispatcher.Cancel(target, 0)
	}
}

// drainFills applies every pending fill from both adapters to the position
// reducer and notifies the caller for WAL/event publication.
func drainFills(adapters map[schema.VenueID]*venue.SimAdapter, positions *state.PositionReducer, onFill func(schema.Fill)) {
	for _, a := range adapters {
	drain:
		for {
			select {
			case fill := <-a.Fills():
				positions.ApplyFill(fill)
				onFill(fill)
			default:
				break drain
			}
		}
	}
}

// chaosProcess adapts a bus.Event through the chaos engine's Event shape.
func chaosProcess(engine *chaos.Engine, e bus.Event) []chaos.Event {
	return engine.Process(chaos.Event{Header: e.Header, Payload: e.Payload})
}

func runReplay(ctx context.Context, dir, prefix, snapshotPath string) error {
	result, err := state.RecoverPositions(ctx, state.RecoverConfig{
		WALDir:       dir,
		SnapshotPath: snapshotPath,
		FilePrefix:   prefix,
	})
	if err != nil {
		return err
	}
	log.Printf("replay recovered: positions=%d last_seq=%d last_event_ts=%d", result.Positions.Count(), result.LastSeq, result.LastEventTs)
	return nil
}
