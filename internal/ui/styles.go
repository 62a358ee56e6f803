package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - success, checkmarks
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors, X marks
	WarningColor = lipgloss.Color("#FFA500") // Orange - warnings
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60 // Minimum supported terminal width
	MaxContentWidth  = 100
	DefaultPadding   = 2
	DetailKeyWidth   = 14 // Key column width in detail lines
)

// Shared styles for command output
var (
	SuccessTitleStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)

	ErrorTitleStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningTitleStyle = lipgloss.NewStyle().
				Foreground(WarningColor).
				Bold(true)

	DetailKeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(DetailKeyWidth)

	DetailValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)
)

// Status markers
const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
	NeutralMarker = "·"
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// TruncateValue shortens s to at most max display characters,
// marking the cut with an ellipsis
func TruncateValue(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// RenderSuccess renders a success line with a checkmark
func RenderSuccess(text string) string {
	return SuccessTitleStyle.Render(SuccessMarker+" ") + text
}

// RenderFailure renders a failure line with an X mark
func RenderFailure(text string) string {
	return ErrorTitleStyle.Render(FailureMarker+" ") + text
}

// RenderNeutral renders an informational line
func RenderNeutral(text string) string {
	return MutedStyle.Render(NeutralMarker+" ") + text
}

// RenderDetail renders an aligned key/value detail line, truncating
// the value so the line fits the terminal
func RenderDetail(key, value string) string {
	avail := GetTerminalWidth() - DetailKeyWidth - 2*DefaultPadding
	return "  " + DetailKeyStyle.Render(key) + DetailValueStyle.Render(TruncateValue(value, avail))
}
