package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string

	SelectionBg   string
	SelectionText string

	Border string

	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// Styles returns pre-built lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
	}
}

// Styles contains pre-built lipgloss styles.
type Styles struct {
	Text      lipgloss.Style
	MutedText lipgloss.Style
	Accent    lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Danger    lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Selected lipgloss.Style
	Panel    lipgloss.Style
}

var themes = []Theme{
	{
		Name:          "Dracula",
		Background:    "#282a36",
		Surface:       "#44475a",
		SelectionBg:   "#44475a",
		SelectionText: "#f8f8f2",
		Border:        "#6272a4",
		Text:          "#f8f8f2",
		Muted:         "#6272a4",
		Accent:        "#bd93f9",
		Success:       "#50fa7b",
		Warning:       "#f1fa8c",
		Danger:        "#ff5555",
	},
	{
		Name:          "Nord",
		Background:    "#2e3440",
		Surface:       "#3b4252",
		SelectionBg:   "#434c5e",
		SelectionText: "#eceff4",
		Border:        "#4c566a",
		Text:          "#d8dee9",
		Muted:         "#4c566a",
		Accent:        "#88c0d0",
		Success:       "#a3be8c",
		Warning:       "#ebcb8b",
		Danger:        "#bf616a",
	},
}

// GetTheme returns the named theme, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the name of the theme after the given one,
// wrapping around.
func NextTheme(name string) string {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}
