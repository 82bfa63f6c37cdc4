package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Cyberpunk color palette
	neonCyan    = lipgloss.Color("#00FFFF")
	neonMagenta = lipgloss.Color("#FF00FF")
	neonGreen   = lipgloss.Color("#39FF14")
	neonYellow  = lipgloss.Color("#FFFF00")
	neonOrange  = lipgloss.Color("#FF6700")
	neonRed     = lipgloss.Color("#FF0000")
	darkBg      = lipgloss.Color("#0A0E27")
	darkBg2     = lipgloss.Color("#1A1E37")
	dimWhite    = lipgloss.Color("#B0B0B0")
	dimGray     = lipgloss.Color("#666666")

	// Document tabs
	tabStyle = lipgloss.NewStyle().
			Foreground(dimWhite).
			Padding(0, 1)

	tabActiveStyle = lipgloss.NewStyle().
			Background(neonMagenta).
			Foreground(darkBg).
			Bold(true).
			Padding(0, 1)

	// Title shown before the tabs
	titleStyle = lipgloss.NewStyle().
			Foreground(neonCyan).
			Bold(true).
			Padding(0, 1)

	// Gutter with line numbers
	gutterStyle = lipgloss.NewStyle().
			Foreground(dimGray)

	gutterCaretStyle = lipgloss.NewStyle().
				Foreground(neonYellow).
				Bold(true)

	caretLineStyle = lipgloss.NewStyle().
			Background(darkBg2)

	emptyStyle = lipgloss.NewStyle().
			Foreground(dimGray).
			Italic(true).
			Padding(1, 2)

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Background(darkBg2).
			Foreground(dimWhite)

	statusLabelStyle = lipgloss.NewStyle().
				Foreground(neonCyan).
				Bold(true)

	statusValueStyle = lipgloss.NewStyle().
				Foreground(neonYellow)

	scrollingStyle = lipgloss.NewStyle().
			Foreground(neonGreen).
			Bold(true)

	pausedStyle = lipgloss.NewStyle().
			Foreground(neonOrange).
			Bold(true)

	stoppedStyle = lipgloss.NewStyle().
			Foreground(dimWhite).
			Bold(true)

	insertStyle = lipgloss.NewStyle().
			Foreground(neonMagenta).
			Bold(true)

	// Update offer banner
	offerStyle = lipgloss.NewStyle().
			Background(neonGreen).
			Foreground(darkBg).
			Bold(true).
			Padding(0, 1)

	// Log styles
	logTimestampStyle = lipgloss.NewStyle().
				Foreground(dimGray)

	logMessageStyle = lipgloss.NewStyle().
			Foreground(dimWhite)

	// Help style
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// levelColor picks the log panel color for a level
func levelColor(level string) lipgloss.Color {
	switch level {
	case "ERROR":
		return neonRed
	case "WARN":
		return neonOrange
	case "SUCCESS":
		return neonGreen
	case "INFO":
		return neonCyan
	default:
		return dimWhite
	}
}
