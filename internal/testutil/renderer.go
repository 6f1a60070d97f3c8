package testutil

import (
	"fmt"
	"slices"
	"sync"
)

// RecordingRenderer is a playback renderer that keeps the displayed
// heights and a log of every call.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type RecordingRenderer struct {
	mu      sync.Mutex
	heights []int
	calls   []string

	// panicAt makes the call with this 1-based number panic. Zero disables.
	panicAt int
}

// NewRecordingRenderer creates an empty renderer.
func NewRecordingRenderer() *RecordingRenderer {
	return &RecordingRenderer{}
}

// PanicAt makes the n-th renderer call panic, counting from 1 and
// including calls already made.
func (r *RecordingRenderer) PanicAt(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panicAt = n
}

// Heights returns a copy of the displayed heights.
func (r *RecordingRenderer) Heights() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.heights)
}

// Calls returns a copy of the call log.
func (r *RecordingRenderer) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// CallCount returns the number of calls made so far.
func (r *RecordingRenderer) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *RecordingRenderer) record(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
	if r.panicAt > 0 && len(r.calls) == r.panicAt {
		panic(fmt.Sprintf("renderer: injected failure at call %d", r.panicAt))
	}
}

func (r *RecordingRenderer) Build(heights []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.heights = slices.Clone(heights)
	r.record("build %v", heights)
}

func (r *RecordingRenderer) Highlight(pos1, pos2 int, swap bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if swap {
		r.record("highlight-swap %d %d", pos1, pos2)
		return
	}
	r.record("highlight %d %d", pos1, pos2)
}

func (r *RecordingRenderer) Unhighlight() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("unhighlight")
}

func (r *RecordingRenderer) MoveSlot(pos1, pos2 int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.heights[pos1], r.heights[pos2] = r.heights[pos2], r.heights[pos1]
	r.record("move %d %d", pos1, pos2)
}

func (r *RecordingRenderer) Mark(pos int, multiple bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if multiple {
		r.record("mark %d multiple", pos)
		return
	}
	r.record("mark %d", pos)
}

func (r *RecordingRenderer) Unmark() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("unmark")
}

func (r *RecordingRenderer) Focus(from, to int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("focus %d %d", from, to)
}

func (r *RecordingRenderer) Unfocus() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("unfocus")
}

func (r *RecordingRenderer) RedrawHeight(pos, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.heights[pos] = height
	r.record("redraw %d %d", pos, height)
}

func (r *RecordingRenderer) ClearReplaceIndicator() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("clear-replace")
}
