package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#E0565B")
	muted   = lipgloss.AdaptiveColor{Light: "#737373", Dark: "#A3A3A3"}
	textCol = lipgloss.AdaptiveColor{Light: "#171717", Dark: "#FAFAFA"}
	errCol  = lipgloss.Color("#EF4444")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			Padding(0, 1)

	countStyle = lipgloss.NewStyle().
			Foreground(muted)

	priceStyle = lipgloss.NewStyle().
			Foreground(textCol).
			Bold(true)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#888888")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(textCol).
			Bold(true)

	sectionFocusedStyle = sectionStyle.
				Foreground(accent)

	cursorStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(textCol).
			Bold(true).
			Underline(true)

	optionStyle = lipgloss.NewStyle().
			Foreground(muted)

	statusStyle = lipgloss.NewStyle().
			Foreground(errCol)

	helpStyle = lipgloss.NewStyle().
			Foreground(muted).
			Italic(true)
)
