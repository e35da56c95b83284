package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"main/internal/schema"
)

func TestTradeRecordRowRoundTrip(t *testing.T) {
	record := schema.TradeRecord{
		TradeID: 1, IntentID: 2, TraceID: 3, PairID: 4,
		Package: schema.PackageAYesBNo, Outcome: schema.TradeOutcomeCommitted,
		RealizedPnLCents: 500, OpenedTsMs: 1000, ClosedTsMs: 2000,
	}
	row := toTradeRecordRow(record)
	assert.Equal(t, record, fromTradeRecordRow(row))
}

func TestPositionSnapshotRowRoundTrip(t *testing.T) {
	pos := schema.Position{VenueID: 1, MarketID: 10, QtyYes: 5, QtyNo: 3, AvgPxYes: 40, AvgPxNo: 55}
	row := toPositionSnapshotRow(pos, 42, 1000)
	assert.Equal(t, uint64(42), row.Seq)
	assert.Equal(t, int64(1000), row.EventTsMs)
	assert.Equal(t, pos, fromPositionSnapshotRow(row))
}

func TestOptionDSNUsesConnStringVerbatim(t *testing.T) {
	opt := Option{ConnString: "postgres://custom"}
	dsn, err := opt.dsn()
	assert.NoError(t, err)
	assert.Equal(t, "postgres://custom", dsn)
}

func TestOptionDSNBuildsFromFields(t *testing.T) {
	opt := Option{Host: "db.internal", Port: 5433, User: "trader", Password: "secret", Database: "hedges"}
	dsn, err := opt.dsn()
	assert.NoError(t, err)
	assert.Contains(t, dsn, "db.internal:5433")
	assert.Contains(t, dsn, "trader:secret@")
	assert.Contains(t, dsn, "/hedges")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestOptionDSNDefaultsHostAndPort(t *testing.T) {
	opt := Option{}
	dsn, err := opt.dsn()
	assert.NoError(t, err)
	assert.Contains(t, dsn, "localhost:5432")
}
