package ir

import "fmt"

// Kind identifies a step variant. The string form is the serialized "kind"
// field and must never change for an existing kind.
type Kind string

const (
	KindComparison Kind = "comparison"
	KindSwap       Kind = "swap"
	KindMark       Kind = "mark"
	KindUnmark     Kind = "unmark"
	KindFocus      Kind = "focus"
	KindUnfocus    Kind = "unfocus"
	KindReplace    Kind = "replace"
	KindUnreplace  Kind = "unreplace"
)

// Kinds lists every step kind in declaration order.
var Kinds = []Kind{
	KindComparison,
	KindSwap,
	KindMark,
	KindUnmark,
	KindFocus,
	KindUnfocus,
	KindReplace,
	KindUnreplace,
}

// Step is a sealed interface over the closed set of trace events.
// Only the types in this file implement it.
//
// Delayed reports whether playback should wait for the configured delay
// after applying the step in continuous mode.
type Step interface {
	Kind() Kind
	Delayed() bool
	step()
}

// Trace is the ordered list of steps recorded by one sorting run.
type Trace []Step

// Comparison records that the values at Pos1 and Pos2 were compared.
type Comparison struct {
	Pos1  int
	Pos2  int
	Delay bool
}

// Swap records that the values at Pos1 and Pos2 were exchanged.
type Swap struct {
	Pos1  int
	Pos2  int
	Delay bool
}

// Mark flags a position. Multiple marks coexist with the current ones
// instead of replacing them.
type Mark struct {
	Pos      int
	Multiple bool
	Delay    bool
}

// Unmark clears all marks.
type Unmark struct {
	Delay bool
}

// Focus highlights the inclusive range [From, To].
type Focus struct {
	From  int
	To    int
	Delay bool
}

// Unfocus clears the focus range.
type Unfocus struct {
	Delay bool
}

// Replace records that the value at Pos was overwritten with Height.
type Replace struct {
	Pos    int
	Height int
	Delay  bool
}

// Unreplace clears the replace indication.
type Unreplace struct {
	Delay bool
}

func (Comparison) Kind() Kind { return KindComparison }
func (Swap) Kind() Kind       { return KindSwap }
func (Mark) Kind() Kind       { return KindMark }
func (Unmark) Kind() Kind     { return KindUnmark }
func (Focus) Kind() Kind      { return KindFocus }
func (Unfocus) Kind() Kind    { return KindUnfocus }
func (Replace) Kind() Kind    { return KindReplace }
func (Unreplace) Kind() Kind  { return KindUnreplace }

func (s Comparison) Delayed() bool { return s.Delay }
func (s Swap) Delayed() bool       { return s.Delay }
func (s Mark) Delayed() bool       { return s.Delay }
func (s Unmark) Delayed() bool     { return s.Delay }
func (s Focus) Delayed() bool      { return s.Delay }
func (s Unfocus) Delayed() bool    { return s.Delay }
func (s Replace) Delayed() bool    { return s.Delay }
func (s Unreplace) Delayed() bool  { return s.Delay }

func (Comparison) step() {}
func (Swap) step()       {}
func (Mark) step()       {}
func (Unmark) step()     {}
func (Focus) step()      {}
func (Unfocus) step()    {}
func (Replace) step()    {}
func (Unreplace) step()  {}

// Mutates reports whether the step changes array contents.
// Only Swap and Replace do.
func Mutates(s Step) bool {
	switch s.(type) {
	case Swap, Replace:
		return true
	default:
		return false
	}
}

// String renders a step as a single human-readable line.
func String(s Step) string {
	var body string
	switch v := s.(type) {
	case Comparison:
		body = fmt.Sprintf("comparison %d %d", v.Pos1, v.Pos2)
	case Swap:
		body = fmt.Sprintf("swap %d %d", v.Pos1, v.Pos2)
	case Mark:
		if v.Multiple {
			body = fmt.Sprintf("mark %d multiple", v.Pos)
		} else {
			body = fmt.Sprintf("mark %d", v.Pos)
		}
	case Focus:
		body = fmt.Sprintf("focus %d..%d", v.From, v.To)
	case Replace:
		body = fmt.Sprintf("replace %d <- %d", v.Pos, v.Height)
	case Unmark, Unfocus, Unreplace:
		body = string(v.Kind())
	default:
		return fmt.Sprintf("unknown step %T", s)
	}
	if !s.Delayed() {
		body += " (no delay)"
	}
	return body
}

// Count tallies steps by kind.
func (t Trace) Count() map[Kind]int {
	counts := make(map[Kind]int, len(Kinds))
	for _, s := range t {
		counts[s.Kind()]++
	}
	return counts
}

// Replay applies the mutating steps of t to a copy of initial and returns
// the result. Steps that do not mutate are skipped.
func Replay(initial []int, t Trace) []int {
	data := make([]int, len(initial))
	copy(data, initial)
	for _, s := range t {
		switch v := s.(type) {
		case Swap:
			data[v.Pos1], data[v.Pos2] = data[v.Pos2], data[v.Pos1]
		case Replace:
			data[v.Pos] = v.Height
		}
	}
	return data
}
