package store

import (
	"time"

	"main/internal/schema"
)

// TradeRecordRow is the gorm model for the append-only trade_records table.
type TradeRecordRow struct {
	TradeID          uint64 `gorm:"primaryKey"`
	IntentID         uint64 `gorm:"index"`
	TraceID          uint64 `gorm:"index"`
	PairID           uint32 `gorm:"index"`
	Package          uint8
	Outcome          uint8 `gorm:"index"`
	RealizedPnLCents int64
	OpenedTsMs       int64
	ClosedTsMs       int64
	CreatedAt        time.Time
}

// TableName pins the row to a stable table name regardless of struct name.
func (TradeRecordRow) TableName() string { return "trade_records" }

func toTradeRecordRow(r schema.TradeRecord) TradeRecordRow {
	return TradeRecordRow{
		TradeID:          r.TradeID,
		IntentID:         r.IntentID,
		TraceID:          r.TraceID,
		PairID:           uint32(r.PairID),
		Package:          uint8(r.Package),
		Outcome:          uint8(r.Outcome),
		RealizedPnLCents: int64(r.RealizedPnLCents),
		OpenedTsMs:       r.OpenedTsMs,
		ClosedTsMs:       r.ClosedTsMs,
	}
}

func fromTradeRecordRow(row TradeRecordRow) schema.TradeRecord {
	return schema.TradeRecord{
		TradeID:          row.TradeID,
		IntentID:         row.IntentID,
		TraceID:          row.TraceID,
		PairID:           schema.PairID(row.PairID),
		Package:          schema.Package(row.Package),
		Outcome:          schema.TradeOutcome(row.Outcome),
		RealizedPnLCents: schema.Price(row.RealizedPnLCents),
		OpenedTsMs:       row.OpenedTsMs,
		ClosedTsMs:       row.ClosedTsMs,
	}
}

// PositionSnapshotRow is the gorm model for the position_snapshots table.
// Rows are upserted per (venue_id, market_id): this table holds the
// latest position, not a history of every fill.
type PositionSnapshotRow struct {
	VenueID   uint16 `gorm:"primaryKey"`
	MarketID  uint32 `gorm:"primaryKey"`
	QtyYes    int64
	QtyNo     int64
	AvgPxYes  int64
	AvgPxNo   int64
	Seq       uint64
	EventTsMs int64
	UpdatedAt time.Time
}

// TableName pins the row to a stable table name regardless of struct name.
func (PositionSnapshotRow) TableName() string { return "position_snapshots" }

func toPositionSnapshotRow(p schema.Position, seq uint64, eventTsMs int64) PositionSnapshotRow {
	return PositionSnapshotRow{
		VenueID:   uint16(p.VenueID),
		MarketID:  uint32(p.MarketID),
		QtyYes:    int64(p.QtyYes),
		QtyNo:     int64(p.QtyNo),
		AvgPxYes:  int64(p.AvgPxYes),
		AvgPxNo:   int64(p.AvgPxNo),
		Seq:       seq,
		EventTsMs: eventTsMs,
	}
}

func fromPositionSnapshotRow(row PositionSnapshotRow) schema.Position {
	return schema.Position{
		VenueID:  schema.VenueID(row.VenueID),
		MarketID: schema.MarketID(row.MarketID),
		QtyYes:   schema.Quantity(row.QtyYes),
		QtyNo:    schema.Quantity(row.QtyNo),
		AvgPxYes: schema.Price(row.AvgPxYes),
		AvgPxNo:  schema.Price(row.AvgPxNo),
	}
}
