package tui

import (
	"slices"
	"sync"
)

// Board is a playback.Renderer that keeps the display state in memory.
// The controller writes to it from its loop goroutine; the model reads a
// Frame on every refresh tick. No method blocks on anything but the
// board's own mutex.
type Board struct {
	mu sync.Mutex

	heights []int

	highlighted bool
	highlight   [2]int
	swap        bool

	marks []int

	focused bool
	focus   [2]int

	replaced int
}

// Frame is a consistent copy of the board state.
type Frame struct {
	Heights []int

	Highlighted bool
	Highlight   [2]int
	Swap        bool

	Marks []int

	Focused bool
	Focus   [2]int

	// Replaced is the last redrawn position, or -1.
	Replaced int
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{replaced: -1}
}

// Frame returns a copy of the current state.
func (b *Board) Frame() Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Frame{
		Heights:     slices.Clone(b.heights),
		Highlighted: b.highlighted,
		Highlight:   b.highlight,
		Swap:        b.swap,
		Marks:       slices.Clone(b.marks),
		Focused:     b.focused,
		Focus:       b.focus,
		Replaced:    b.replaced,
	}
}

func (b *Board) Build(heights []int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.heights = slices.Clone(heights)
	b.highlighted = false
	b.marks = nil
	b.focused = false
	b.replaced = -1
}

func (b *Board) Highlight(pos1, pos2 int, swap bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.highlighted = true
	b.highlight = [2]int{pos1, pos2}
	b.swap = swap
}

func (b *Board) Unhighlight() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.highlighted = false
}

func (b *Board) MoveSlot(pos1, pos2 int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.heights[pos1], b.heights[pos2] = b.heights[pos2], b.heights[pos1]
}

func (b *Board) Mark(pos int, multiple bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !multiple {
		b.marks = b.marks[:0]
	}
	if !slices.Contains(b.marks, pos) {
		b.marks = append(b.marks, pos)
	}
}

func (b *Board) Unmark() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.marks = nil
}

func (b *Board) Focus(from, to int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.focused = true
	b.focus = [2]int{from, to}
}

func (b *Board) Unfocus() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.focused = false
}

func (b *Board) RedrawHeight(pos, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.heights[pos] = height
	b.replaced = pos
}

func (b *Board) ClearReplaceIndicator() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replaced = -1
}
