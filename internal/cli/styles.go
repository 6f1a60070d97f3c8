package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type textStyles struct {
	title lipgloss.Style
	label lipgloss.Style
	ok    lipgloss.Style
	bad   lipgloss.Style
}

// newTextStyles binds styles to w, so pipes and buffers get plain text.
func newTextStyles(w io.Writer) textStyles {
	r := lipgloss.NewRenderer(w)
	return textStyles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		label: r.NewStyle().Foreground(lipgloss.Color("241")),
		ok:    r.NewStyle().Foreground(lipgloss.Color("42")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
