package tui

import (
	"slices"
	"strings"
)

const barGlyph = "█"

// roles assigns a role to every slot of f.
func roles(f Frame) []role {
	out := make([]role, len(f.Heights))
	for i := range out {
		if f.Focused && (i < f.Focus[0] || i > f.Focus[1]) {
			out[i] = roleOutside
		} else {
			out[i] = roleNormal
		}
	}
	raise := func(pos int, r role) {
		if pos >= 0 && pos < len(out) && out[pos] < r {
			out[pos] = r
		}
	}
	for _, p := range f.Marks {
		raise(p, roleMarked)
	}
	raise(f.Replaced, roleReplaced)
	if f.Highlighted {
		r := roleCompared
		if f.Swap {
			r = roleSwapped
		}
		raise(f.Highlight[0], r)
		raise(f.Highlight[1], r)
	}
	return out
}

// column is one drawn bar: a row count and a role.
type column struct {
	rows int
	role role
}

// columns folds the slots of f into at most width columns scaled to at
// most height rows. A column covering several slots shows the tallest one
// and the strongest role.
func columns(f Frame, width, height int) []column {
	n := len(f.Heights)
	if n == 0 || width <= 0 || height <= 0 {
		return nil
	}
	lo, hi := slices.Min(f.Heights), slices.Max(f.Heights)
	base := min(0, lo-1)
	span := hi - base

	rs := roles(f)
	count := min(n, width)
	cols := make([]column, count)
	for c := range cols {
		from, to := c*n/count, (c+1)*n/count
		for i := from; i < to; i++ {
			rows := ((f.Heights[i]-base)*height + span - 1) / span
			cols[c].rows = max(cols[c].rows, rows)
			cols[c].role = max(cols[c].role, rs[i])
		}
	}
	return cols
}

// renderBars draws f as vertical bars, top row first.
func renderBars(st styles, f Frame, width, height int) string {
	cols := columns(f, width, height)
	if len(cols) == 0 {
		return ""
	}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		// runs of equal role share one styled segment
		start := 0
		for start < len(cols) {
			end := start
			var seg strings.Builder
			for end < len(cols) && cols[end].role == cols[start].role {
				if cols[end].rows >= row {
					seg.WriteString(barGlyph)
				} else {
					seg.WriteByte(' ')
				}
				end++
			}
			b.WriteString(st.bars[cols[start].role].Render(seg.String()))
			start = end
		}
		if row > 1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
