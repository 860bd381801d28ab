package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan  = lipgloss.Color("#00FFFF")
	colorGreen = lipgloss.Color("#00FF00")
	colorRed   = lipgloss.Color("#FF0000")
	colorGray  = lipgloss.Color("#666666")
	colorAmber = lipgloss.Color("#FFBF00")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	doneStepStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	currentStepStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorCyan)

	pendingStepStyle = lipgloss.NewStyle().
				Foreground(colorGray)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorAmber)

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)
)
