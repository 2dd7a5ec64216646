// Package ui provides the terminal styling and rendering for mdot's
// command output. Styles use adaptive colors that adjust to light and
// dark terminal themes.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	// PackageStyle renders package names.
	PackageStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "39"})

	// LabelStyle renders field labels (links, excludes, templates).
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "243", Dark: "245"})

	// PathStyle renders source and target paths.
	PathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "78"})

	// WarningStyle renders warning diagnostics.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "214"})

	// ErrorStyle renders fatal diagnostics.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "196"})
)

// SetColorEnabled forces styling on or off, overriding terminal
// detection. Used by the `color` setting and non-tty output.
func SetColorEnabled(enabled bool) {
	if enabled {
		lipgloss.SetColorProfile(termenv.ANSI256)
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}
