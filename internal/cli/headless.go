package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/roach88/sortscope/internal/playback"
	"github.com/roach88/sortscope/internal/trace"
)

// lineRenderer prints one line per visible change. It is called from the
// controller's loop goroutine.
type lineRenderer struct {
	mu      sync.Mutex
	w       io.Writer
	heights []int
}

func newLineRenderer(w io.Writer) *lineRenderer {
	return &lineRenderer{w: w}
}

func (r *lineRenderer) Heights() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.heights)
}

func (r *lineRenderer) Build(heights []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.heights = slices.Clone(heights)
	fmt.Fprintf(r.w, "array   %v\n", heights)
}

func (r *lineRenderer) Highlight(pos1, pos2 int, swap bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if swap {
		fmt.Fprintf(r.w, "swap    %d %d\n", pos1, pos2)
		return
	}
	fmt.Fprintf(r.w, "compare %d %d\n", pos1, pos2)
}

func (r *lineRenderer) MoveSlot(pos1, pos2 int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.heights[pos1], r.heights[pos2] = r.heights[pos2], r.heights[pos1]
}

func (r *lineRenderer) RedrawHeight(pos, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.heights[pos] = height
	fmt.Fprintf(r.w, "write   %d %d\n", pos, height)
}

func (r *lineRenderer) Focus(from, to int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "focus   %d..%d\n", from, to)
}

func (r *lineRenderer) Unhighlight()           {}
func (r *lineRenderer) Mark(int, bool)         {}
func (r *lineRenderer) Unmark()                {}
func (r *lineRenderer) Unfocus()               {}
func (r *lineRenderer) ClearReplaceIndicator() {}

// doneObserver signals the end of a session.
type doneObserver struct {
	playback.NopObserver
	finished chan struct{}
	failed   chan error
}

func newDoneObserver() *doneObserver {
	return &doneObserver{
		finished: make(chan struct{}, 1),
		failed:   make(chan error, 1),
	}
}

func (o *doneObserver) OnFinished() {
	select {
	case o.finished <- struct{}{}:
	default:
	}
}

func (o *doneObserver) OnFailure(err error) {
	select {
	case o.failed <- err:
	default:
	}
}

// PlaybackResult summarizes a headless playback.
type PlaybackResult struct {
	RecordingID string          `json:"recording_id"`
	Initiator   string          `json:"initiator"`
	Algorithm   string          `json:"algorithm"`
	N           int             `json:"n"`
	Seed        uint64          `json:"seed"`
	Applied     int             `json:"applied"`
	Total       int             `json:"total"`
	State       string          `json:"state"`
	Final       []int           `json:"final"`
	Counts      playback.Counts `json:"counts"`
}

// playHeadless drives rec through a controller. With steps > 0 it
// single-steps that many times; otherwise the timed loop runs until the
// trace is exhausted or ctx is cancelled, which pauses playback.
func playHeadless(ctx context.Context, rec *trace.Recording, delay time.Duration, steps int, w io.Writer, logger *slog.Logger) (*PlaybackResult, error) {
	renderer := newLineRenderer(w)
	observer := newDoneObserver()
	ctrl := playback.New(renderer,
		playback.WithDelay(delay),
		playback.WithObserver(observer),
		playback.WithLogger(logger),
	)
	defer ctrl.Close()

	session := playback.NewSession(ctrl, nil)
	session.InitiateRecording(rec)

	if steps > 0 {
		for i := 0; i < steps && ctrl.State() != playback.Finished; i++ {
			if err := ctrl.Step(); err != nil {
				return nil, err
			}
		}
	} else if ctrl.State() != playback.Finished {
		if err := ctrl.Start(); err != nil {
			return nil, err
		}
		select {
		case <-observer.finished:
		case err := <-observer.failed:
			return nil, err
		case <-ctx.Done():
			ctrl.Pause()
			logger.Info("playback paused", "applied", ctrl.Applied(), "of", len(rec.Steps))
		}
	}
	ctrl.Close()

	return &PlaybackResult{
		RecordingID: rec.ID,
		Initiator:   rec.Initiator,
		Algorithm:   rec.Algorithm,
		N:           rec.N,
		Seed:        rec.Seed,
		Applied:     ctrl.Applied(),
		Total:       len(rec.Steps),
		State:       ctrl.State().String(),
		Final:       renderer.Heights(),
		Counts:      ctrl.Counts(),
	}, nil
}

// writePlaybackSummary prints the text form of res.
func writePlaybackSummary(w io.Writer, res *PlaybackResult) {
	st := newTextStyles(w)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s on %s (n=%d, seed=%d)\n", st.title.Render(res.Algorithm), st.label.Render("sorting"), res.Initiator, res.N, res.Seed)
	fmt.Fprintf(w, "%s %s, %d/%d steps\n", st.label.Render("state"), res.State, res.Applied, res.Total)
	fmt.Fprintf(w, "%s %d  %s %d  %s %d\n",
		st.label.Render("comparisons"), res.Counts.Comparisons,
		st.label.Render("swaps"), res.Counts.Swaps,
		st.label.Render("replacements"), res.Counts.Replacements)
	fmt.Fprintf(w, "%s %v\n", st.label.Render("final"), res.Final)
}
