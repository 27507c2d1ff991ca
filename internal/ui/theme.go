package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Card behind the image
	Control    string // Refresh control background
	Border     string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Link    string
	Success string
	Warning string
	Danger  string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Bold(true),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		LinkText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Link)).
			Underline(true),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Background(lipgloss.Color(t.Control)).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Title       lipgloss.Style
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	LinkText    lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	Button      lipgloss.Style
	Card        lipgloss.Style
}

// Theme definitions

var themes = map[string]Theme{
	"Epic":     epicTheme(),
	"Nightfox": nightfoxTheme(),
	"Daylight": daylightTheme(),
}

var themeOrder = []string{"Epic", "Nightfox", "Daylight"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return epicTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func epicTheme() Theme {
	// Same palette as the HTML page
	return Theme{
		Name: "Epic",

		Background: "#0b1020",
		Surface:    "#111827",
		Control:    "#1f2937",
		Border:     "#374151",

		Text:    "#eef2ff",
		Muted:   "#c7d2fe",
		Faint:   "#6b7280",
		Accent:  "#a5b4fc",
		Link:    "#a5b4fc",
		Success: "#86efac",
		Warning: "#fcd34d",
		Danger:  "#f87171",
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		Control:    "#29394f", // bg3
		Border:     "#39506d", // bg4

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Link:    "#63cdcf", // cyan
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
	}
}

func daylightTheme() Theme {
	// Light palette for bright terminals
	return Theme{
		Name: "Daylight",

		Background: "#f8fafc",
		Surface:    "#eef2ff",
		Control:    "#e0e7ff",
		Border:     "#a5b4fc",

		Text:    "#1e1b4b",
		Muted:   "#4338ca",
		Faint:   "#6b7280",
		Accent:  "#4f46e5",
		Link:    "#2563eb",
		Success: "#15803d",
		Warning: "#b45309",
		Danger:  "#b91c1c",
	}
}
