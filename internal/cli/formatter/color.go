// Package formatter renders CLI output with lipgloss styles. Styles degrade
// to plain text when stdout is not a terminal.
package formatter

import "github.com/charmbracelet/lipgloss"

// Kitchen palette.
var (
	ColorGreen  = lipgloss.Color("#bbf7d0")
	ColorYellow = lipgloss.Color("#fde68a")
	ColorRed    = lipgloss.Color("#fca5a5")
	ColorBlue   = lipgloss.Color("#bae6fd")
	ColorDim    = lipgloss.Color("#71717a")
	ColorFg     = lipgloss.Color("#d4d4d8")
	ColorHeader = lipgloss.Color("#fb923c")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Dim renders secondary text.
func Dim(s string) string { return StyleDim.Render(s) }
