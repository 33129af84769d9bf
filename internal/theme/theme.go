package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
// Populated by SetTheme; the accent colors vary per palette.
var (
	ColorBlue    lipgloss.AdaptiveColor
	ColorGreen   lipgloss.AdaptiveColor
	ColorYellow  lipgloss.AdaptiveColor
	ColorRed     lipgloss.AdaptiveColor
	ColorOrange  lipgloss.AdaptiveColor
	ColorMagenta lipgloss.AdaptiveColor
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Shared styles, rebuilt whenever the palette changes.
var (
	HeaderStyle       lipgloss.Style
	StatusBarStyle    lipgloss.Style
	DetailPanelStyle  lipgloss.Style
	ListItemStyle     lipgloss.Style
	SelectedItemStyle lipgloss.Style
	HelpStyle         lipgloss.Style
	BorderStyle       lipgloss.Style
	InactiveStyle     lipgloss.Style
	TakenStyle        lipgloss.Style
	DueStyle          lipgloss.Style
)

func init() {
	SetTheme("default")
}

// SetTheme installs the named palette and rebuilds the shared styles.
// "mono" collapses the accent colors for limited terminals; unknown
// names fall back to the default palette. Call before any view renders.
func SetTheme(name string) {
	switch name {
	case "mono":
		ColorBlue = ColorWhite
		ColorGreen = ColorWhite
		ColorYellow = ColorWhite
		ColorRed = ColorWhite
		ColorOrange = ColorGray
		ColorMagenta = ColorGray
	default:
		ColorBlue = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
		ColorGreen = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
		ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
		ColorRed = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
		ColorOrange = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
		ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	}

	rebuildStyles()
}

// rebuildStyles derives the shared styles from the current colors.
func rebuildStyles() {
	// HeaderStyle is used for top-level section headers and the
	// application title.
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWhite).
		Background(ColorBlue).
		Padding(0, 1)

	// StatusBarStyle is used for the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorWhite).
		Background(ColorSubtle).
		Padding(0, 1)

	// DetailPanelStyle wraps the detail view content area.
	DetailPanelStyle = lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	// ListItemStyle is the base style for items in a list.
	ListItemStyle = lipgloss.NewStyle().
		PaddingLeft(2)

	// SelectedItemStyle highlights the currently focused list item.
	SelectedItemStyle = lipgloss.NewStyle().
		PaddingLeft(1).
		Bold(true).
		Foreground(ColorBlue).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(ColorBlue)

	// HelpStyle is used for keyboard shortcut hints and help text.
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	// BorderStyle provides a standard rounded border for panels.
	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	// InactiveStyle dims medications that have been archived.
	InactiveStyle = lipgloss.NewStyle().
		Foreground(ColorGray).
		Strikethrough(true)

	// TakenStyle marks a medication already taken today.
	TakenStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorGreen)

	// DueStyle marks a medication still due today.
	DueStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorYellow)
}

// FrequencyStyle returns a color-coded style for the given frequency value.
func FrequencyStyle(frequency string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch frequency {
	case "daily":
		return base.Foreground(ColorBlue)
	case "weekly":
		return base.Foreground(ColorMagenta)
	case "monthly":
		return base.Foreground(ColorOrange)
	case "as_needed":
		return base.Foreground(ColorGray)
	default:
		return base.Foreground(ColorGray)
	}
}
