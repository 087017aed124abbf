package tui

import "github.com/charmbracelet/lipgloss"

// Colors used in the terminal UI.
var (
	colorPrimary = lipgloss.Color("33")  // Blue
	colorMuted   = lipgloss.Color("244") // Gray
	colorLink    = lipgloss.Color("39")  // Light blue
	colorError   = lipgloss.Color("203") // Red
	colorSuccess = lipgloss.Color("78")  // Green
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

var inputStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

var focusedInputStyle = inputStyle.
	BorderForeground(colorPrimary)

var provinceStyle = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Bold(true)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

var selectedCardStyle = cardStyle.
	BorderForeground(colorPrimary)

var cardNameStyle = lipgloss.NewStyle().Bold(true)

var mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)

var linkStyle = lipgloss.NewStyle().
	Foreground(colorLink).
	Underline(true)

var errorStyle = lipgloss.NewStyle().Foreground(colorError)

var successStyle = lipgloss.NewStyle().Foreground(colorSuccess)

var helpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	MarginTop(1)
