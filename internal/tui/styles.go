package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

// Styles shared by the progress view and the record renderer.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	KeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	PathStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)
)

// Symbols for visual feedback.
const (
	SymbolCheck  = "✓"
	SymbolCross  = "✗"
	SymbolBullet = "•"
)
