package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	ColorCyan   = lipgloss.Color("#00FFFF")
	ColorGreen  = lipgloss.Color("#00FF00")
	ColorYellow = lipgloss.Color("#FFFF00")
	ColorRed    = lipgloss.Color("#FF0000")
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(ColorCyan)
	allowStyle   = lipgloss.NewStyle().Foreground(ColorGreen)
	skipStyle    = lipgloss.NewStyle().Foreground(ColorYellow)
	blockedStyle = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
)

// ForceCIProfile pins an ANSI color profile when running under GitHub
// Actions: the log renderer understands ANSI sequences but stdout is not
// a TTY, so auto-detection would strip all color.
func ForceCIProfile() {
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		lipgloss.SetColorProfile(termenv.ANSI)
	}
}

// Info renders a neutral status line
func Info(s string) string { return infoStyle.Render(s) }

// Allow renders a line explaining why the run may proceed
func Allow(s string) string { return allowStyle.Render(s) }

// Skip renders a line explaining why no deployment is needed
func Skip(s string) string { return skipStyle.Render(s) }

// Blocked renders a fatal conflict line
func Blocked(s string) string { return blockedStyle.Render(s) }
