package venue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yanun0323/decimal"
	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"
	"github.com/yanun0323/pkg/ws"

	internalerrors "main/internal/errors"
	"main/internal/schema"
)

// DepthCodec adapts one venue's wire messages to the generic streaming
// adapter. Concrete venues (e.g. a Binance-style or a Polymarket-style
// feed) implement this instead of the adapter re-implementing per-venue
// framing, following the binance_pub.go/btcc_pub.go split.
type DepthCodec interface {
	// SubscribeRequest builds the JSON payload sent to subscribe to a
	// market's depth stream.
	SubscribeRequest(reqID int64, market string) any

	// AckMatches reports whether a decoded subscribe-ack message matches
	// the outstanding request ID, and whether it signals success.
	AckMatches(m ws.Message, reqID int64) (matched bool, ok bool, err error)

	// ParseDepth decodes a streamed depth message into raw string levels
	// plus the venue's own sequence number, or ok=false if the message
	// is not a depth update.
	ParseDepth(m ws.Message) (market string, bids, asks [][2]string, seq uint64, eventTsMs int64, ok bool)
}

// DefaultFreshnessBudgetMs bounds how old a post-reconnect snapshot's
// venue_ts may be before the adapter will clear its down flag from it,
// matching the risk controller's own freshness budget default.
const DefaultFreshnessBudgetMs = 2000

// StreamAdapter is a generic venue streaming adapter built on the
// yanun0323/pkg/ws client (following internal/ingest/marketdata/binance_pub.go),
// parameterized by a per-venue DepthCodec and PriceScale.
type StreamAdapter struct {
	id                schema.VenueID
	wsURL             string
	codec             DepthCodec
	scale             schema.ScaleSpec
	marketOf          map[string]schema.MarketID // venue symbol string -> internal MarketID
	symOf             map[schema.MarketID]string
	freshnessBudgetMs int64

	mu            sync.Mutex
	wss           *ws.WebSocket
	healthy       bool
	awaitingFresh bool // true after a (re)connect, until a fresh snapshot clears it
	lastSeq       map[schema.MarketID]uint64
	fills         chan schema.Fill
	subs          map[schema.MarketID]chan schema.BookSnapshot
	backoff       Backoff
	reqID         int64
}

// NewStreamAdapter creates a streaming adapter for one venue.
func NewStreamAdapter(id schema.VenueID, wsURL string, codec DepthCodec, scale schema.ScaleSpec, markets map[string]schema.MarketID) *StreamAdapter {
	symOf := make(map[schema.MarketID]string, len(markets))
	for sym, mid := range markets {
		symOf[mid] = sym
	}
	return &StreamAdapter{
		id:                id,
		wsURL:             wsURL,
		codec:             codec,
		scale:             scale,
		marketOf:          markets,
		symOf:             symOf,
		freshnessBudgetMs: DefaultFreshnessBudgetMs,
		lastSeq:           make(map[schema.MarketID]uint64),
		fills:             make(chan schema.Fill, 256),
		subs:              make(map[schema.MarketID]chan schema.BookSnapshot),
		backoff:           DefaultBackoff(),
	}
}

// SetFreshnessBudgetMs overrides the default post-reconnect freshness
// budget used to decide when to clear the down flag.
func (a *StreamAdapter) SetFreshnessBudgetMs(ms int64) {
	a.mu.Lock()
	a.freshnessBudgetMs = ms
	a.mu.Unlock()
}

func (a *StreamAdapter) VenueID() schema.VenueID { return a.id }

func (a *StreamAdapter) Healthy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.healthy
}

func (a *StreamAdapter) Fills() <-chan schema.Fill { return a.fills }

// Start connects and reconnects with bounded exponential backoff,
// marking the adapter unhealthy while disconnected and healthy again only
// once the first post-reconnect snapshot proves fresh (see
// handleMessage). It emits no VenueDown/VenueUp event; the state is read
// through Healthy.
func (a *StreamAdapter) Start(ctx context.Context) error {
	attempt := 0
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := a.connectOnce(ctx); err != nil {
			attempt++
			a.setHealthy(false)
			logs.Info(fmt.Sprintf("venue %d: connect failed, attempt %d: %v", a.id, attempt, err))
			select {
			case <-time.After(a.backoff.Next(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}
		attempt = 0
	}
}

func (a *StreamAdapter) connectOnce(ctx context.Context) error {
	a.mu.Lock()
	a.wss = ws.New(ctx, a.wsURL)
	wss := a.wss
	a.mu.Unlock()

	if err := wss.Start(ctx); err != nil {
		return internalerrors.WrapKind(internalerrors.TransportError, err, "venue: start websocket")
	}

	for market, sym := range a.symOf {
		if err := a.subscribeWire(ctx, sym); err != nil {
			return internalerrors.WrapKind(internalerrors.TransportError, err, "venue: subscribe "+sym)
		}
		a.mu.Lock()
		delete(a.lastSeq, market)
		a.mu.Unlock()
	}

	a.mu.Lock()
	a.awaitingFresh = true
	a.mu.Unlock()
	a.observe(ctx)
	return nil
}

func (a *StreamAdapter) subscribeWire(ctx context.Context, sym string) error {
	a.reqID++
	reqID := a.reqID
	return a.wss.SendAndWait(ctx, ws.Sidecar{
		Sender: func(ctx context.Context, w *ws.WebSocket) error {
			if err := w.WriteJSON(a.codec.SubscribeRequest(reqID, sym)); err != nil {
				return errors.Wrap(err, "write subscribe payload")
			}
			return nil
		},
		Waiter: func(ctx context.Context, m ws.Message) (bool, error) {
			matched, ok, err := a.codec.AckMatches(m, reqID)
			if !matched {
				return false, nil
			}
			if err != nil {
				return false, err
			}
			return ok, nil
		},
	}, true)
}

func (a *StreamAdapter) observe(ctx context.Context) {
	ch, cancel := a.wss.Subscribe()
	defer cancel()
	for {
		select {
		case <-sys.Shutdown():
			a.setHealthy(false)
			return
		case <-ctx.Done():
			a.setHealthy(false)
			return
		case m, ok := <-ch:
			if !ok {
				a.setHealthy(false)
				return
			}
			a.handleMessage(m)
		}
	}
}

func (a *StreamAdapter) handleMessage(m ws.Message) {
	sym, rawBids, rawAsks, seq, eventTsMs, ok := a.codec.ParseDepth(m)
	if !ok {
		return
	}
	market, ok := a.marketOf[sym]
	if !ok {
		return
	}

	a.mu.Lock()
	prev, hadPrev := a.lastSeq[market]
	if hadPrev && seq <= prev {
		a.mu.Unlock()
		return // stale/duplicate sequence: drop
	}
	if hadPrev && seq != prev+1 {
		// Sequence gap: drop this update and take its sequence as the new
		// baseline, so the next contiguous update is published. No
		// resubscribe or resync is issued.
		a.lastSeq[market] = seq
		a.mu.Unlock()
		return
	}
	a.lastSeq[market] = seq
	ch, hasSub := a.subs[market]
	a.mu.Unlock()
	if !hasSub {
		return
	}

	bids, err := parseLevels(rawBids, a.scale.PriceScale, a.scale.QuantityScale)
	if err != nil {
		return
	}
	asks, err := parseLevels(rawAsks, a.scale.PriceScale, a.scale.QuantityScale)
	if err != nil {
		return
	}

	recvTsMs := nowMs()
	snap := schema.BookSnapshot{
		VenueID:    a.id,
		MarketID:   market,
		SequenceNo: seq,
		VenueTsMs:  eventTsMs,
		RecvTsMs:   recvTsMs,
		Bids:       bids,
		Asks:       asks,
	}

	a.mu.Lock()
	if a.awaitingFresh {
		if recvTsMs-eventTsMs <= a.freshnessBudgetMs {
			a.awaitingFresh = false
			a.healthy = true
		}
	}
	a.mu.Unlock()

	select {
	case ch <- snap:
	default:
	}
}

// Subscribe returns the channel a market's snapshots are published to.
// The channel is created eagerly; Start's wire-level subscribe call
// feeds it once connected.
func (a *StreamAdapter) Subscribe(ctx context.Context, market schema.MarketID) (<-chan schema.BookSnapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.symOf[market]; !ok {
		return nil, internalerrors.NewKind(internalerrors.ConfigError, "venue: unknown market")
	}
	ch, ok := a.subs[market]
	if !ok {
		ch = make(chan schema.BookSnapshot, 64)
		a.subs[market] = ch
	}
	return ch, nil
}

// Unsubscribe stops publishing to a market's channel.
func (a *StreamAdapter) Unsubscribe(market schema.MarketID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if ch, ok := a.subs[market]; ok {
		close(ch)
		delete(a.subs, market)
	}
	return nil
}

func (a *StreamAdapter) setHealthy(v bool) {
	a.mu.Lock()
	a.healthy = v
	a.mu.Unlock()
}

// parseLevels converts raw [price, quantity] string pairs (as sent by
// every venue in the pack) into scaled-integer Levels, using
// github.com/yanun0323/decimal for the string-to-number parse, matching
// internal/ingest/marketdata_old/btcc_pub.go's own use of that package.
func parseLevels(raw [][2]string, priceScale, qtyScale schema.Scale) ([]schema.Level, error) {
	out := make([]schema.Level, 0, len(raw))
	for _, pair := range raw {
		px, err := decimal.NewFromString(pair[0])
		if err != nil {
			return nil, err
		}
		qty, err := decimal.NewFromString(pair[1])
		if err != nil {
			return nil, err
		}
		out = append(out, schema.Level{
			Price:    schema.Price(px.Shift(int32(priceScale)).IntPart()),
			Quantity: schema.Quantity(qty.Shift(int32(qtyScale)).IntPart()),
		})
	}
	return out, nil
}

func nowMs() int64 {
	return time.Now().UTC().UnixMilli()
}
