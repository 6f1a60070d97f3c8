package playback

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortscope/internal/ir"
	"github.com/roach88/sortscope/internal/testutil"
	"github.com/roach88/sortscope/internal/trace"
)

const waitTimeout = 5 * time.Second

func record(t *testing.T, initiatorName, algorithmName string, n int) *trace.Recording {
	t.Helper()
	rec, err := trace.Record(trace.RecordOptions{
		Initiator: initiatorName,
		Algorithm: algorithmName,
		N:         n,
		Seed:      1,
	})
	require.NoError(t, err)
	return rec
}

func newController(delay time.Duration) (*Controller, *testutil.RecordingRenderer, *testutil.CountingObserver) {
	r := testutil.NewRecordingRenderer()
	o := testutil.NewCountingObserver()
	return New(r, WithDelay(delay), WithObserver(o)), r, o
}

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(waitTimeout):
		t.Fatalf("timed out waiting for %s", what)
	}
}

// countsUpTo tallies the counted kinds among the first n steps.
func countsUpTo(steps ir.Trace, n int) Counts {
	c := steps[:n].Count()
	return Counts{
		Comparisons:  c[ir.KindComparison],
		Swaps:        c[ir.KindSwap],
		Replacements: c[ir.KindReplace],
	}
}

func TestController_NewIsIdle(t *testing.T) {
	c, _, _ := newController(0)

	assert.Equal(t, Idle, c.State())
	assert.Equal(t, Counts{}, c.Counts())
	assert.Equal(t, -1, c.Index())
	assert.Equal(t, 0, c.Applied())
	assert.Equal(t, time.Duration(0), c.Delay())
	assert.Equal(t, DefaultDelay, New(testutil.NewRecordingRenderer()).Delay())
}

func TestController_OperationsWithoutSession(t *testing.T) {
	c, _, _ := newController(0)

	err := c.Step()
	assert.ErrorIs(t, err, ErrNoSession)
	assert.True(t, IsPreconditionError(err))

	assert.ErrorIs(t, c.Start(), ErrNoSession)

	c.Pause()
	c.Wait()
	c.Close()
	assert.Equal(t, Idle, c.State())
}

func TestController_InitiateBuildsAndResets(t *testing.T) {
	rec := record(t, "reverse", "selection", 4)
	c, r, o := newController(0)

	c.Initiate(rec.Cursor())

	assert.Equal(t, Ready, c.State())
	assert.Equal(t, []string{"build [4 3 2 1]"}, r.Calls())
	assert.Equal(t, 3, o.Notifications(), "initiate notifies each counter once")
	cmp, sw, rep := o.Last()
	assert.Zero(t, cmp+sw+rep)
}

func TestController_SingleStepSortedBubble(t *testing.T) {
	rec := record(t, "sorted", "bubble", 5)
	c, r, o := newController(time.Hour)
	c.Initiate(rec.Cursor())

	for i := range 8 {
		require.NoError(t, c.Step(), "step %d", i)
	}

	assert.Equal(t, Finished, c.State())
	assert.Equal(t, Counts{Comparisons: 4}, c.Counts())
	assert.Equal(t, 1, o.FinishedCount())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, r.Heights())

	calls := r.Calls()
	assert.Equal(t, []string{"highlight 1 0", "unmark"}, calls[1:3])
	assert.Equal(t, []string{"unhighlight", "unmark", "unfocus", "clear-replace"}, calls[len(calls)-4:])

	err := c.Step()
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, err, trace.ErrNoNextStep)
	assert.True(t, IsPreconditionError(err))
	assert.Equal(t, 1, o.FinishedCount(), "OnFinished fires once per session")
}

func TestController_StepFromReadyPauses(t *testing.T) {
	rec := record(t, "reverse", "selection", 4)
	c, _, _ := newController(0)
	c.Initiate(rec.Cursor())

	require.NoError(t, c.Step())
	assert.Equal(t, Paused, c.State())
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, 1, c.Applied())
}

func TestController_TimedLoopRunsToCompletion(t *testing.T) {
	rec := record(t, "permutation", "merge", 30)
	c, r, o := newController(0)
	c.Initiate(rec.Cursor())

	require.NoError(t, c.Start())
	waitFor(t, o.Finished(), "OnFinished")
	c.Wait()

	st := rec.Stats()
	assert.Equal(t, Finished, c.State())
	assert.Equal(t, Counts{Comparisons: st.Comparisons, Swaps: st.Swaps, Replacements: st.Replacements}, c.Counts())
	assert.True(t, slices.IsSorted(r.Heights()))
	assert.Equal(t, rec.Final(), r.Heights())

	cmp, sw, rep := o.Last()
	assert.Equal(t, []int{st.Comparisons, st.Swaps, st.Replacements}, []int{cmp, sw, rep})
	assert.Equal(t, 1, o.FinishedCount())

	assert.ErrorIs(t, c.Start(), ErrExhausted)
}

func TestController_StepWhileRunningIsRejected(t *testing.T) {
	rec := record(t, "sorted", "bubble", 5)
	c, _, _ := newController(time.Hour)
	c.Initiate(rec.Cursor())

	require.NoError(t, c.Start())
	assert.Eventually(t, func() bool { return c.Index() == 0 }, waitTimeout, time.Millisecond)

	err := c.Step()
	assert.ErrorIs(t, err, ErrRunning)
	assert.True(t, IsPreconditionError(err))
	assert.Equal(t, 0, c.Index(), "rejected step must not advance")

	// Start while running is a no-op
	assert.NoError(t, c.Start())

	c.Pause()
	c.Wait()
	assert.Equal(t, Paused, c.State())
}

func TestController_PauseStopsBetweenSteps(t *testing.T) {
	rec := record(t, "permutation", "quick", 200)
	c, r, _ := newController(time.Millisecond)
	c.Initiate(rec.Cursor())

	require.NoError(t, c.Start())
	assert.Eventually(t, func() bool { return c.Index() >= 10 }, waitTimeout, time.Millisecond)
	c.Pause()

	index := c.Index()
	calls := r.CallCount()
	c.Wait()
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, Paused, c.State())
	assert.Equal(t, index, c.Index(), "no step may be applied after Pause returns")
	assert.Equal(t, calls, r.CallCount())
	assert.Equal(t, countsUpTo(rec.Steps, index+1), c.Counts())
	assert.Equal(t, trace.Apply(rec.Initial, rec.Steps[:index+1]), r.Heights())
}

func TestController_ResumeAfterPause(t *testing.T) {
	rec := record(t, "permutation", "shell", 40)
	c, r, o := newController(time.Millisecond)
	c.Initiate(rec.Cursor())

	require.NoError(t, c.Start())
	assert.Eventually(t, func() bool { return c.Index() >= 5 }, waitTimeout, time.Millisecond)
	c.Pause()

	require.NoError(t, c.Step(), "single step is allowed while paused")
	c.SetDelay(0)
	require.NoError(t, c.Start())

	waitFor(t, o.Finished(), "OnFinished")
	c.Wait()
	assert.Equal(t, rec.Final(), r.Heights())
	assert.Equal(t, 1, o.FinishedCount())
}

func TestController_PauseLatencyIsBounded(t *testing.T) {
	rec := record(t, "sorted", "bubble", 5)
	c, _, _ := newController(time.Hour)
	c.Initiate(rec.Cursor())

	require.NoError(t, c.Start())
	assert.Eventually(t, func() bool { return c.Index() == 0 }, waitTimeout, time.Millisecond)

	done := make(chan struct{})
	go func() {
		c.Pause()
		c.Wait()
		close(done)
	}()
	waitFor(t, done, "loop to leave its sleep")
}

func TestController_InitiateWhileRunningJoinsLoop(t *testing.T) {
	first := record(t, "sorted", "bubble", 5)
	second := record(t, "reverse", "insertion", 3)
	c, r, _ := newController(time.Hour)
	c.Initiate(first.Cursor())
	require.NoError(t, c.Start())
	assert.Eventually(t, func() bool { return c.Index() == 0 }, waitTimeout, time.Millisecond)

	c.Initiate(second.Cursor())

	assert.Equal(t, Ready, c.State())
	assert.Equal(t, Counts{}, c.Counts())
	assert.Equal(t, -1, c.Index())
	assert.Equal(t, 0, c.Applied())
	assert.Equal(t, []int{3, 2, 1}, r.Heights())
}

func TestController_EmptyTraceFinishesImmediately(t *testing.T) {
	rec := record(t, "sorted", "bubble", 1)
	require.Empty(t, rec.Steps)
	c, _, o := newController(0)

	c.Initiate(rec.Cursor())

	assert.Equal(t, Finished, c.State())
	assert.Equal(t, 1, o.FinishedCount())
	assert.ErrorIs(t, c.Start(), ErrExhausted)
	assert.ErrorIs(t, c.Step(), ErrExhausted)
}

func TestController_StepFailureIsRecovered(t *testing.T) {
	rec := record(t, "reverse", "selection", 4)
	c, r, o := newController(0)
	c.Initiate(rec.Cursor())
	r.PanicAt(2)

	err := c.Step()
	require.Error(t, err)
	assert.True(t, IsLoopFailure(err))
	assert.False(t, IsPreconditionError(err))
	assert.Equal(t, Failed, c.State())
	assert.Len(t, o.Failures(), 1)

	assert.ErrorIs(t, c.Step(), ErrLoopFailure)
	assert.ErrorIs(t, c.Start(), ErrLoopFailure)

	r.PanicAt(0)
	c.Initiate(rec.Cursor())
	assert.Equal(t, Ready, c.State())
	assert.NoError(t, c.Step())
}

func TestController_LoopFailureIsRecovered(t *testing.T) {
	rec := record(t, "permutation", "heap", 20)
	c, r, o := newController(0)
	c.Initiate(rec.Cursor())
	r.PanicAt(10)

	require.NoError(t, c.Start())
	waitFor(t, o.Failed(), "OnFailure")
	c.Wait()

	assert.Equal(t, Failed, c.State())
	require.Len(t, o.Failures(), 1)
	assert.True(t, IsLoopFailure(o.Failures()[0]))
	assert.Zero(t, o.FinishedCount())
}

func TestController_SetDelay(t *testing.T) {
	c, _, _ := newController(time.Second)

	c.SetDelay(25 * time.Millisecond)
	assert.Equal(t, 25*time.Millisecond, c.Delay())

	c.SetDelay(-time.Second)
	assert.Equal(t, time.Duration(0), c.Delay())
}

func TestController_CloseStopsLoop(t *testing.T) {
	rec := record(t, "sorted", "bubble", 5)
	c, _, _ := newController(time.Hour)
	c.Initiate(rec.Cursor())
	require.NoError(t, c.Start())

	c.Close()

	assert.Equal(t, Paused, c.State())
}

func TestControlError_Format(t *testing.T) {
	err := newControlError(CodeExhausted, "trace has no next step", trace.ErrNoNextStep)

	assert.Contains(t, err.Error(), "EXHAUSTED")
	assert.True(t, errors.Is(err, ErrExhausted))
	assert.False(t, errors.Is(err, ErrRunning))
	assert.Equal(t, "RUNNING: timed loop is running", ErrRunning.Error())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "state(42)", State(42).String())
}
