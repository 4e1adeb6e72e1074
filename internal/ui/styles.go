package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary   = lipgloss.Color("70")  // Leaf green
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorSky       = lipgloss.Color("75")  // Blue for weather
	ColorEarth     = lipgloss.Color("137") // Brown for soil

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)
	StyleSky     = lipgloss.NewStyle().Foreground(ColorSky)
	StyleEarth   = lipgloss.NewStyle().Foreground(ColorEarth)

	// Weather Box - forecast panel on the overview screen
	StyleWeatherBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSky).
			Padding(0, 1)

	// Advisor Box - chat replies from the advisory model
	StyleAdvisorBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	// Components
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleSectionTitle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Underline(true)

	// Semantic Prefix Styles
	StylePrefixDone  = lipgloss.NewStyle().Foreground(ColorSuccess)
	StylePrefixWarn  = lipgloss.NewStyle().Foreground(ColorWarning)
	StylePrefixError = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StylePrefixUser  = lipgloss.NewStyle().Foreground(ColorSuccess)
	StylePrefixModel = lipgloss.NewStyle().Foreground(ColorPrimary)
)

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}
