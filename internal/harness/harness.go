package harness

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/sortscope/internal/playback"
	"github.com/roach88/sortscope/internal/testutil"
	"github.com/roach88/sortscope/internal/trace"
)

// Harness replays one recording through a playback controller.
type Harness struct {
	controller *playback.Controller
	renderer   *testutil.RecordingRenderer
	observer   *testutil.CountingObserver
	logger     *slog.Logger
}

func newHarness() *Harness {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	renderer := testutil.NewRecordingRenderer()
	observer := testutil.NewCountingObserver()
	return &Harness{
		controller: playback.New(renderer,
			playback.WithDelay(0),
			playback.WithObserver(observer),
			playback.WithLogger(logger),
		),
		renderer: renderer,
		observer: observer,
		logger:   logger,
	}
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Record the trace for the scenario's initiator, algorithm and seed
// 2. Initiate a fresh controller with the recording
// 3. Single-step until the controller reports Finished
// 4. Check counters and the rendered array against the recording
// 5. Evaluate the scenario's assertions
//
// An error is returned only when the scenario cannot be executed at all.
// Failed checks are reported in the result.
func Run(scenario *Scenario) (*Result, error) {
	rec, err := trace.Record(trace.RecordOptions{
		Initiator: scenario.Initiator,
		Algorithm: scenario.Algorithm,
		N:         scenario.N,
		Seed:      scenario.Seed,
		Initial:   scenario.Initial,
	})
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", scenario.Name, err)
	}

	h := newHarness()
	if err := h.replay(rec); err != nil {
		return nil, fmt.Errorf("replay %s: %w", scenario.Name, err)
	}

	result := NewResult()
	result.Recording = rec
	result.Final = h.renderer.Heights()
	result.Counts = h.controller.Counts()

	for _, msg := range h.checkConsistency(rec) {
		result.AddError(msg)
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// replay single-steps the whole recording.
func (h *Harness) replay(rec *trace.Recording) error {
	h.controller.Initiate(rec.Cursor())
	for h.controller.State() != playback.Finished {
		if err := h.controller.Step(); err != nil {
			return err
		}
	}
	h.logger.Debug("replayed", "recording", rec.ID, "steps", len(rec.Steps))
	return nil
}

// checkConsistency compares what the controller showed and counted with
// what the recording says.
func (h *Harness) checkConsistency(rec *trace.Recording) []string {
	var failures []string

	st := rec.Stats()
	want := playback.Counts{Comparisons: st.Comparisons, Swaps: st.Swaps, Replacements: st.Replacements}
	if got := h.controller.Counts(); got != want {
		failures = append(failures, fmt.Sprintf("counters %+v do not match trace %+v", got, want))
	}

	cmp, sw, rep := h.observer.Last()
	if cmp != want.Comparisons || sw != want.Swaps || rep != want.Replacements {
		failures = append(failures, fmt.Sprintf("observer saw %d/%d/%d, trace has %+v", cmp, sw, rep, want))
	}

	if n := h.observer.FinishedCount(); n != 1 {
		failures = append(failures, fmt.Sprintf("OnFinished fired %d times, want 1", n))
	}

	if final := rec.Final(); !slices.Equal(h.renderer.Heights(), final) {
		failures = append(failures, fmt.Sprintf("rendered %v, replayed trace gives %v", h.renderer.Heights(), final))
	}
	return failures
}
