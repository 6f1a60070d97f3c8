package tui

import "github.com/charmbracelet/lipgloss"

// role is what a bar column currently shows. Higher roles win when
// several slots share a column.
type role int

const (
	roleOutside role = iota
	roleNormal
	roleMarked
	roleReplaced
	roleCompared
	roleSwapped
)

type styles struct {
	bars   map[role]lipgloss.Style
	title  lipgloss.Style
	state  lipgloss.Style
	stats  lipgloss.Style
	errMsg lipgloss.Style
}

// newStyles binds every style to r so output follows r's color profile.
func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		bars: map[role]lipgloss.Style{
			roleOutside:  r.NewStyle().Foreground(lipgloss.Color("240")),
			roleNormal:   r.NewStyle().Foreground(lipgloss.Color("252")),
			roleMarked:   r.NewStyle().Foreground(lipgloss.Color("212")),
			roleReplaced: r.NewStyle().Foreground(lipgloss.Color("42")),
			roleCompared: r.NewStyle().Foreground(lipgloss.Color("214")),
			roleSwapped:  r.NewStyle().Foreground(lipgloss.Color("196")),
		},
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		state:  r.NewStyle().Foreground(lipgloss.Color("212")),
		stats:  r.NewStyle().Foreground(lipgloss.Color("241")),
		errMsg: r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
