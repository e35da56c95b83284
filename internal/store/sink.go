package store

import (
	"gorm.io/gorm/clause"

	"main/internal/schema"
	"main/internal/state"
)

// AppendTradeRecord inserts one terminal trade record. TradeID is the
// primary key, so a retried append of the same trade is a no-op rather
// than a duplicate row.
func (c *Client) AppendTradeRecord(record schema.TradeRecord) error {
	row := toTradeRecordRow(record)
	return c.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

// UpsertPosition writes the latest position for one (venue, market) pair,
// replacing whatever was stored under the same key.
func (c *Client) UpsertPosition(pos schema.Position, seq uint64, eventTsMs int64) error {
	row := toPositionSnapshotRow(pos, seq, eventTsMs)
	return c.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "venue_id"}, {Name: "market_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"qty_yes", "qty_no", "avg_px_yes", "avg_px_no", "seq", "event_ts_ms"}),
	}).Create(&row).Error
}

// SavePositionSnapshot persists every position held by a reducer snapshot
// in one pass, used alongside the JSON snapshot written by
// internal/state for local crash recovery.
func (c *Client) SavePositionSnapshot(snap state.Snapshot) error {
	for _, pos := range snap.Positions {
		if err := c.UpsertPosition(pos, snap.LastSeq, snap.LastEventTs); err != nil {
			return err
		}
	}
	return nil
}

// LoadPositions returns every stored position, keyed by (venue, market).
func (c *Client) LoadPositions() ([]schema.Position, error) {
	var rows []PositionSnapshotRow
	if err := c.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]schema.Position, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromPositionSnapshotRow(row))
	}
	return out, nil
}

// TradeRecordsForPair returns every trade record for a pair, oldest first.
func (c *Client) TradeRecordsForPair(pairID schema.PairID) ([]schema.TradeRecord, error) {
	var rows []TradeRecordRow
	if err := c.db.Where("pair_id = ?", uint32(pairID)).Order("opened_ts_ms asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]schema.TradeRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromTradeRecordRow(row))
	}
	return out, nil
}
