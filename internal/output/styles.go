package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette — named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: paths, entity names, bundle ids.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "created" path status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "overwrite" and "skip" path statuses.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for error text (matches the ERROR log level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Styles groups the semantic styles used across the CLI output.
type Styles struct {
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Noun    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

var defaultStyles = &Styles{
	Bold:    lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Faint(true),
	Noun:    lipgloss.NewStyle().Foreground(ColorCyan),
	Success: lipgloss.NewStyle().Foreground(ColorGreen),
	Warning: lipgloss.NewStyle().Foreground(ColorYellow),
	Error:   lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed),
}

// GetStyles returns the default style set.
func GetStyles() *Styles {
	return defaultStyles
}

// Path status constants for generation output. The values match the
// writer's planned actions so tree notes can be styled directly.
const (
	StatusCreate    = "create"
	StatusOverwrite = "overwrite"
	StatusSkipped   = "skip"
)

// StatusStyle returns the lipgloss style for a given path status string.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreate:
		return defaultStyles.Success
	case StatusOverwrite, StatusSkipped:
		return defaultStyles.Warning
	default:
		return lipgloss.NewStyle()
	}
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatError renders an inline validation error for re-presented wizard steps.
func FormatError(msg string) string {
	return defaultStyles.Error.Render(fmt.Sprintf("✗ %s", msg))
}
