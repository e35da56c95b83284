package recorder

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/schema"
)

func TestWriterRejectsAppendBeforeStart(t *testing.T) {
	w, err := NewWriter(DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	err = w.TryAppend(schema.NewHeader(schema.EventFill, 1, 1, 0, 0), nil)
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestWriterRejectsAppendAfterClose(t *testing.T) {
	w, err := NewWriter(DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	require.NoError(t, w.Close())
	cancel()

	err = w.TryAppend(schema.NewHeader(schema.EventFill, 1, 1, 0, 0), nil)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestWriterDoubleStartFails(t *testing.T) {
	w, err := NewWriter(DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	assert.ErrorIs(t, w.Start(ctx), ErrAlreadyStarted)
}

func TestNewWriterRejectsEmptyDir(t *testing.T) {
	_, err := NewWriter(Config{})
	assert.Error(t, err)
}

func TestPlaybackRoundTripsWrittenRecords(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(DefaultConfig(dir))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))

	require.NoError(t, w.TryAppend(schema.NewHeader(schema.EventFill, 1, 1, 100, 100), []byte("hello")))
	require.NoError(t, w.TryAppend(schema.NewHeader(schema.EventFill, 1, 2, 200, 200), nil))
	require.NoError(t, w.Close())
	cancel()

	pb, err := NewPlayback(PlaybackConfig{Dir: dir})
	require.NoError(t, err)

	var seqs []uint64
	var payloads [][]byte
	err = pb.Run(context.Background(), func(h schema.EventHeader, payload []byte) error {
		seqs = append(seqs, h.Seq)
		cp := append([]byte(nil), payload...)
		payloads = append(payloads, cp)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, seqs)
	assert.Equal(t, []byte("hello"), payloads[0])
	assert.Empty(t, payloads[1])
}

func TestPlaybackDetectsChecksumMismatch(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(DefaultConfig(dir))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	require.NoError(t, w.TryAppend(schema.NewHeader(schema.EventFill, 1, 1, 100, 100), []byte("hello")))
	require.NoError(t, w.Close())
	cancel()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	path := dir + "/" + entries[0].Name()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(path, data, 0o644))

	pb, err := NewPlayback(PlaybackConfig{Dir: dir})
	require.NoError(t, err)
	err = pb.Run(context.Background(), func(schema.EventHeader, []byte) error { return nil })
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}
