package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI. The palette follows the product's
// terminal look: cyan for the interviewer agent, burnt orange for the
// customer agent.
var (
	ColorCyan    = lipgloss.Color("#22D3EE")
	ColorOrange  = lipgloss.Color("#EA8C3C")
	ColorMint    = lipgloss.Color("#34D399")
	ColorRed     = lipgloss.Color("#F87171")
	ColorYellow  = lipgloss.Color("#FBBF24")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	LiveDotStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	DoneDotStyle = lipgloss.NewStyle().
			Foreground(ColorMint).
			Bold(true)

	IdleDotStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	InterviewerStyle = lipgloss.NewStyle().
				Foreground(ColorCyan)

	CustomerStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	PanelTitleActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorCyan)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	LiveBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorMint).
			Bold(true)

	ScrollBadgeStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Bold(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	VerdictGoStyle = lipgloss.NewStyle().
			Foreground(ColorMint).
			Bold(true)

	VerdictMaybeStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Bold(true)

	VerdictNoGoStyle = lipgloss.NewStyle().
				Foreground(ColorRed).
				Bold(true)

	ScoreHighStyle = lipgloss.NewStyle().
			Foreground(ColorMint)

	ScoreMidStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	ScoreLowStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	QuoteStyle = lipgloss.NewStyle().
			Foreground(ColorOrange).
			Italic(true)
)
