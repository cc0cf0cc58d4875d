package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	colorAccent   = lipgloss.Color("57")
	colorSelected = lipgloss.Color("229")
	colorSubtle   = lipgloss.Color("241")
	colorBorder   = lipgloss.Color("240")
	colorOK       = lipgloss.Color("42")
	colorCritical = lipgloss.Color("196")
	colorWarning  = lipgloss.Color("214")
	colorValue    = lipgloss.Color("252")
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values shared by all views.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSelected).
			Background(colorAccent).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	LabelStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	ValueStyle  = lipgloss.NewStyle().Foreground(colorValue).Bold(true)
	SubtleStyle = lipgloss.NewStyle().Foreground(colorSubtle)
	InfoStyle   = lipgloss.NewStyle().Italic(true).Foreground(colorSubtle)
	HelpStyle   = lipgloss.NewStyle().Foreground(colorSubtle)

	OKStyle       = lipgloss.NewStyle().Foreground(colorOK)
	WarningStyle  = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	CriticalStyle = lipgloss.NewStyle().Foreground(colorCritical).Bold(true)

	SpinnerStyle = lipgloss.NewStyle().Foreground(colorAccent)
	BarStyle     = lipgloss.NewStyle().Foreground(colorAccent)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colorBorder).
				BorderBottom(true)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(colorSelected).
				Background(colorAccent)

	MenuSelectedStyle = lipgloss.NewStyle().
				Foreground(colorSelected).
				Background(colorAccent).
				Padding(0, 1)
	MenuItemStyle = lipgloss.NewStyle().Padding(0, 1)
)
