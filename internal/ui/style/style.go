// Package style holds the colors and icons shared by kiln's human-facing output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Ember  = lipgloss.Color("#E4572E")
	Ash    = lipgloss.Color("#6B7280")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check     = "✓"
	Cross     = "✗"
	Warning   = "!"
	Unchanged = "="
	Removed   = "-"
)
