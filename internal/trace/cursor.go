package trace

import (
	"slices"

	"github.com/roach88/sortscope/internal/ir"
)

// Cursor walks a trace. The index names the last step returned by Next and
// starts at -1.
//
// A Cursor is not safe for concurrent use. The playback controller is its
// only advancer while a session is bound.
type Cursor struct {
	initial []int
	steps   ir.Trace
	index   int
}

// NewCursor creates a cursor positioned before the first step.
// initial and steps are copied.
func NewCursor(initial []int, steps ir.Trace) *Cursor {
	return &Cursor{
		initial: slices.Clone(initial),
		steps:   slices.Clone(steps),
		index:   -1,
	}
}

// Initial returns a copy of the array the trace starts from.
func (c *Cursor) Initial() []int {
	return slices.Clone(c.initial)
}

// Len returns the number of steps in the trace.
func (c *Cursor) Len() int {
	return len(c.steps)
}

// Index returns the position of the last step returned by Next, or -1.
func (c *Cursor) Index() int {
	return c.index
}

// NextAvailable reports whether Next would return a step.
func (c *Cursor) NextAvailable() bool {
	return c.index+1 < len(c.steps)
}

// Next advances the cursor and returns the step at the new index.
func (c *Cursor) Next() (ir.Step, error) {
	if !c.NextAvailable() {
		return nil, ErrNoNextStep
	}
	c.index++
	return c.steps[c.index], nil
}

// PreviousAvailable reports whether Previous would return a step.
func (c *Cursor) PreviousAvailable() bool {
	return c.index >= 0
}

// Previous returns the step at the current index and moves the cursor back
// by one. The step's effect on the array is not undone.
func (c *Cursor) Previous() (ir.Step, error) {
	if !c.PreviousAvailable() {
		return nil, ErrNoPreviousStep
	}
	s := c.steps[c.index]
	c.index--
	return s, nil
}

// PeekPrevious returns the step before the current one without moving.
func (c *Cursor) PeekPrevious() (ir.Step, bool) {
	if c.index < 1 {
		return nil, false
	}
	return c.steps[c.index-1], true
}

// Apply replays the data-mutating steps of steps against a copy of initial.
func Apply(initial []int, steps ir.Trace) []int {
	return ir.Replay(initial, steps)
}
