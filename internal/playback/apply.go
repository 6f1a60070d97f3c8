package playback

import (
	"fmt"

	"github.com/roach88/sortscope/internal/ir"
)

// apply performs the renderer call for s and updates the counters.
// It returns the step's delay flag. Called with c.mu held.
func (c *Controller) apply(s ir.Step) (bool, error) {
	switch v := s.(type) {
	case ir.Comparison:
		c.renderer.Highlight(v.Pos1, v.Pos2, false)
		c.counts.Comparisons++
		c.observer.OnComparisonCount(c.counts.Comparisons)
	case ir.Swap:
		c.renderer.Highlight(v.Pos1, v.Pos2, true)
		c.renderer.MoveSlot(v.Pos1, v.Pos2)
		c.counts.Swaps++
		c.observer.OnSwapCount(c.counts.Swaps)
	case ir.Mark:
		c.renderer.Mark(v.Pos, v.Multiple)
	case ir.Unmark:
		c.renderer.Unmark()
	case ir.Focus:
		c.renderer.Focus(v.From, v.To)
	case ir.Unfocus:
		c.renderer.Unfocus()
	case ir.Replace:
		c.renderer.RedrawHeight(v.Pos, v.Height)
		c.counts.Replacements++
		c.observer.OnReplaceCount(c.counts.Replacements)
	case ir.Unreplace:
		c.renderer.ClearReplaceIndicator()
	default:
		return false, fmt.Errorf("unknown step type %T", s)
	}
	return s.Delayed(), nil
}

// clear resets every transient indicator once a trace is exhausted.
func (c *Controller) clear() {
	c.renderer.Unhighlight()
	c.renderer.Unmark()
	c.renderer.Unfocus()
	c.renderer.ClearReplaceIndicator()
}
