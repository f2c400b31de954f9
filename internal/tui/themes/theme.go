package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the dashboard.
type Theme struct {
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Normal       lipgloss.Style
	Bold         lipgloss.Style
	TabActive    lipgloss.Style
	TabInactive  lipgloss.Style
	Header       lipgloss.Style
	Cell         lipgloss.Style
	Selected     lipgloss.Style
	SortedHeader lipgloss.Style
	Banner       lipgloss.Style
	ErrorPage    lipgloss.Style
	Flash        lipgloss.Style
	Badge        lipgloss.Style
	Prompt       lipgloss.Style
	Footer       lipgloss.Style
	StatusOK     lipgloss.Style
	StatusWarn   lipgloss.Style
	StatusBad    lipgloss.Style
	Primary      lipgloss.Color
	Muted        lipgloss.Color
	Border       lipgloss.Color
	Foreground   lipgloss.Color
	Error        lipgloss.Color
	Warning      lipgloss.Color
	Success      lipgloss.Color
}

// New builds a theme from a palette.
func New(primary, secondary, fg, muted, border, success, warning, danger, selectedFg lipgloss.Color) Theme {
	return Theme{
		Primary:    primary,
		Muted:      muted,
		Border:     border,
		Foreground: fg,
		Error:      danger,
		Warning:    warning,
		Success:    success,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(selectedFg).
			Background(primary).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(secondary).
			Padding(0, 1),
		SortedHeader: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(primary).
			Padding(0, 1),
		Cell: lipgloss.NewStyle().
			Foreground(fg).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(selectedFg).
			Background(primary).
			Padding(0, 1),
		Banner: lipgloss.NewStyle().
			Foreground(danger).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Padding(0, 1),
		ErrorPage: lipgloss.NewStyle().
			Foreground(danger).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(danger).
			Padding(1, 3),
		Flash: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
		Badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(selectedFg).
			Background(danger).
			Padding(0, 1),
		Prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(warning),
		Footer: lipgloss.NewStyle().
			Foreground(muted),
		StatusOK: lipgloss.NewStyle().
			Foreground(success),
		StatusWarn: lipgloss.NewStyle().
			Foreground(warning),
		StatusBad: lipgloss.NewStyle().
			Foreground(danger),
	}
}

// Default is the default theme.
var Default = New(
	lipgloss.Color("#7c3aed"),
	lipgloss.Color("#a78bfa"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#10b981"),
	lipgloss.Color("#f59e0b"),
	lipgloss.Color("#ef4444"),
	lipgloss.Color("#fafafa"),
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = New(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#f5c2e7"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#f9e2af"),
	lipgloss.Color("#f38ba8"),
	lipgloss.Color("#1e1e2e"),
)

// ByName returns a named theme, falling back to Default.
func ByName(name string) Theme {
	switch name {
	case "catppuccin", "catppuccin-mocha", "mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
