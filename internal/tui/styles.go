// Package tui renders an animated cube in the terminal.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubeviz"
)

const bodyColor = lipgloss.Color("#111111")

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// RenderNet returns the unfolded net of a facelet string with each letter
// drawn as a colored square.
func RenderNet(facelets string) string {
	var out []byte
	for _, ch := range []byte(cubeviz.Net(facelets)) {
		if c, ok := cubeviz.ParseColor(ch); ok {
			out = append(out, lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("■")...)
			continue
		}
		out = append(out, ch)
	}
	return string(out)
}
