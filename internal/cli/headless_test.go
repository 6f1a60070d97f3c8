package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortscope/internal/trace"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLineRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	r := newLineRenderer(buf)

	r.Build([]int{3, 1, 2})
	r.Highlight(0, 1, false)
	r.Highlight(0, 1, true)
	r.MoveSlot(0, 1)
	r.Focus(1, 2)
	r.RedrawHeight(2, 9)
	r.Mark(1, true)
	r.Unmark()
	r.Unhighlight()
	r.Unfocus()
	r.ClearReplaceIndicator()

	assert.Equal(t, "array   [3 1 2]\ncompare 0 1\nswap    0 1\nfocus   1..2\nwrite   2 9\n", buf.String())
	assert.Equal(t, []int{1, 3, 9}, r.Heights())
}

func TestPlayHeadless_CancelPauses(t *testing.T) {
	rec, err := trace.Record(trace.RecordOptions{Initiator: "reverse", Algorithm: "bubble", N: 50})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := playHeadless(ctx, rec, time.Hour, 0, io.Discard, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "paused", result.State)
	assert.Less(t, result.Applied, result.Total)
	assert.Equal(t, rec.ID, result.RecordingID)
}

func TestPlayHeadless_StepsPastEnd(t *testing.T) {
	rec, err := trace.Record(trace.RecordOptions{Initiator: "sorted", Algorithm: "bubble", N: 3})
	require.NoError(t, err)

	result, err := playHeadless(context.Background(), rec, 0, 100, io.Discard, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "finished", result.State)
	assert.Equal(t, len(rec.Steps), result.Applied)
	assert.Equal(t, []int{1, 2, 3}, result.Final)
}

func TestWritePlaybackSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	writePlaybackSummary(buf, &PlaybackResult{
		Initiator: "sorted",
		Algorithm: "bubble",
		N:         3,
		Seed:      7,
		Applied:   4,
		Total:     4,
		State:     "finished",
		Final:     []int{1, 2, 3},
	})
	assert.Contains(t, buf.String(), "bubble sorting on sorted (n=3, seed=7)")
	assert.Contains(t, buf.String(), "state finished, 4/4 steps")
	assert.Contains(t, buf.String(), "final [1 2 3]")
}
