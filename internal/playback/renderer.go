package playback

// Renderer displays the array being sorted. Positions index the rendered
// slots, which start in the order of the heights passed to Build.
type Renderer interface {
	// Build discards the current display and shows heights.
	Build(heights []int)

	Highlight(pos1, pos2 int, swap bool)
	Unhighlight()

	// MoveSlot exchanges the two rendered slots.
	MoveSlot(pos1, pos2 int)

	// Mark flags pos. With multiple set the existing marks are kept.
	Mark(pos int, multiple bool)
	Unmark()

	// Focus shows the inclusive range indicator [from, to].
	Focus(from, to int)
	Unfocus()

	RedrawHeight(pos, height int)
	ClearReplaceIndicator()
}

// Observer receives counter changes and session outcomes.
type Observer interface {
	OnComparisonCount(n int)
	OnSwapCount(n int)
	OnReplaceCount(n int)

	// OnFinished is called once after the last step of a session. When
	// the timed loop applied that step the call comes from the loop
	// goroutine before it exits, so it must not block on Initiate, Close or
	// Wait.
	OnFinished()

	// OnFailure is called when a step application fails.
	OnFailure(err error)
}

// NopObserver ignores every notification. Embed it to implement only
// part of Observer.
type NopObserver struct{}

func (NopObserver) OnComparisonCount(int) {}
func (NopObserver) OnSwapCount(int)       {}
func (NopObserver) OnReplaceCount(int)    {}
func (NopObserver) OnFinished()           {}
func (NopObserver) OnFailure(error)       {}

// Counts are the per-session step counters.
type Counts struct {
	Comparisons  int
	Swaps        int
	Replacements int
}
