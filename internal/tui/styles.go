package tui

import "github.com/charmbracelet/lipgloss"

// Colour palette (ANSI 256).
var (
	ColorHeader    = lipgloss.Color("63")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("241")
	ColorHighlight = lipgloss.Color("212")
	ColorError     = lipgloss.Color("196")
	ColorSelectFG  = lipgloss.Color("229")
	ColorSelectBG  = lipgloss.Color("57")
)

// Shared styles.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeader).
			MarginBottom(1)

	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	MutedStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	ErrorStyle    = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	SelectedStyle = lipgloss.NewStyle().Foreground(ColorSelectFG).Background(ColorSelectBG)
	StatusStyle   = lipgloss.NewStyle().Foreground(ColorHighlight).Italic(true)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorHeader).
			Padding(0, 1)
)
