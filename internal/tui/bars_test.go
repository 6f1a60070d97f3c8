package tui

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainStyles() styles {
	return newStyles(lipgloss.NewRenderer(io.Discard))
}

func TestRoles(t *testing.T) {
	f := Frame{
		Heights:     []int{1, 2, 3, 4, 5},
		Focused:     true,
		Focus:       [2]int{1, 3},
		Marks:       []int{2},
		Highlighted: true,
		Highlight:   [2]int{3, 4},
		Replaced:    -1,
	}
	assert.Equal(t, []role{roleOutside, roleNormal, roleMarked, roleCompared, roleCompared}, roles(f))

	f.Swap = true
	f.Replaced = 2
	assert.Equal(t, []role{roleOutside, roleNormal, roleReplaced, roleSwapped, roleSwapped}, roles(f))
}

func TestColumns_OnePerSlot(t *testing.T) {
	cols := columns(Frame{Heights: []int{1, 2, 3}, Replaced: -1}, 10, 3)
	require.Len(t, cols, 3)
	assert.Equal(t, 1, cols[0].rows)
	assert.Equal(t, 2, cols[1].rows)
	assert.Equal(t, 3, cols[2].rows)
}

func TestColumns_FoldsWhenNarrow(t *testing.T) {
	f := Frame{
		Heights:     []int{1, 2, 3, 4},
		Highlighted: true,
		Highlight:   [2]int{0, 0},
		Replaced:    -1,
	}
	cols := columns(f, 2, 4)
	require.Len(t, cols, 2)
	assert.Equal(t, column{rows: 2, role: roleCompared}, cols[0])
	assert.Equal(t, column{rows: 4, role: roleNormal}, cols[1])
}

func TestColumns_NegativeHeights(t *testing.T) {
	cols := columns(Frame{Heights: []int{-2, 0, 2}, Replaced: -1}, 3, 4)
	require.Len(t, cols, 3)
	assert.Equal(t, 1, cols[0].rows)
	assert.Equal(t, 3, cols[1].rows)
	assert.Equal(t, 4, cols[2].rows)
}

func TestColumns_Empty(t *testing.T) {
	assert.Nil(t, columns(Frame{Replaced: -1}, 10, 10))
	assert.Nil(t, columns(Frame{Heights: []int{1}, Replaced: -1}, 0, 10))
}

func TestRenderBars(t *testing.T) {
	out := renderBars(plainStyles(), Frame{Heights: []int{1, 2, 3}, Replaced: -1}, 3, 3)
	assert.Equal(t, "  █\n ██\n███", out)
}

func TestRenderBars_MixedRoles(t *testing.T) {
	f := Frame{Heights: []int{2, 1}, Marks: []int{1}, Replaced: -1}
	out := renderBars(plainStyles(), f, 2, 2)
	assert.Equal(t, "█ \n██", out)
}
