package chaos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/schema"
)

func TestConfigValidateRejectsOutOfRangeRates(t *testing.T) {
	assert.Error(t, Config{DropRate: 1.5}.Validate())
	assert.Error(t, Config{DuplicateRate: -0.1}.Validate())
	assert.Error(t, Config{ReorderWindow: 0}.Validate())
	assert.Error(t, Config{ReorderWindow: 1, MaxDelay: -time.Second}.Validate())
	assert.NoError(t, Config{ReorderWindow: 1}.Validate())
}

func TestProcessDropsAllEventsWhenDropRateIsOne(t *testing.T) {
	e, err := NewEngine(Config{Seed: 1, DropRate: 1, ReorderWindow: 1})
	require.NoError(t, err)
	out := e.Process(Event{Header: schema.EventHeader{Seq: 1}})
	assert.Nil(t, out)
}

func TestProcessPassesThroughWithNoChaos(t *testing.T) {
	e, err := NewEngine(Config{Seed: 1, ReorderWindow: 1})
	require.NoError(t, err)
	out := e.Process(Event{Header: schema.EventHeader{Seq: 5}})
	require.Len(t, out, 1)
	assert.Equal(t, uint64(5), out[0].Header.Seq)
}

func TestProcessDuplicatesWhenDuplicateRateIsOne(t *testing.T) {
	e, err := NewEngine(Config{Seed: 1, DuplicateRate: 1, ReorderWindow: 1})
	require.NoError(t, err)
	out := e.Process(Event{Header: schema.EventHeader{Seq: 5}})
	assert.Len(t, out, 2)
}

func TestProcessBuffersUntilReorderWindowFull(t *testing.T) {
	e, err := NewEngine(Config{Seed: 1, ReorderWindow: 3})
	require.NoError(t, err)
	assert.Nil(t, e.Process(Event{Header: schema.EventHeader{Seq: 1}}))
	assert.Nil(t, e.Process(Event{Header: schema.EventHeader{Seq: 2}}))
	out := e.Process(Event{Header: schema.EventHeader{Seq: 3}})
	require.Len(t, out, 1)
}

func TestFlushDrainsAllPendingEvents(t *testing.T) {
	e, err := NewEngine(Config{Seed: 1, ReorderWindow: 10})
	require.NoError(t, err)
	for i := uint64(1); i <= 5; i++ {
		e.Process(Event{Header: schema.EventHeader{Seq: i}})
	}
	out := e.Flush()
	assert.Len(t, out, 5)

	seen := make(map[uint64]bool)
	for _, ev := range out {
		seen[ev.Header.Seq] = true
	}
	assert.Len(t, seen, 5)
}

func TestApplyDelayShiftsRecvTimestamp(t *testing.T) {
	e, err := NewEngine(Config{Seed: 2, ReorderWindow: 1, MaxDelay: 100 * time.Millisecond})
	require.NoError(t, err)
	ev := Event{Header: schema.EventHeader{TsEvent: 1000, TsRecv: 1000}}
	out := e.Process(ev)
	require.Len(t, out, 1)
	assert.GreaterOrEqual(t, out[0].Header.TsRecv, int64(1000))
}

func TestNilEngineProcessIsPassThrough(t *testing.T) {
	var e *Engine
	out := e.Process(Event{Header: schema.EventHeader{Seq: 9}})
	require.Len(t, out, 1)
	assert.Equal(t, uint64(9), out[0].Header.Seq)
}
