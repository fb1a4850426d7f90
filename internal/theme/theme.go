package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
)

// HeaderStyle is used for the heading line of a command's output.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue)

// SuccessStyle marks a successful outcome.
var SuccessStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorGreen)

// ErrorStyle marks a failed outcome.
var ErrorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// HintStyle is used for follow-up suggestions under an error.
var HintStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// KeyStyle highlights identifiers such as project keys and issue keys.
var KeyStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorYellow)

// URLStyle renders browsable links.
var URLStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Underline(true)
