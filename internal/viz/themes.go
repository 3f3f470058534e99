package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the terminal preview. Names match the GIF styles so one
// output.theme setting drives both.
type Theme struct {
	Name   string
	Probe  lipgloss.Color
	Grid   lipgloss.Color
	Header lipgloss.Color
	Label  lipgloss.Color
	Value  lipgloss.Color
	Graph  lipgloss.Color
	Muted  lipgloss.Color
	High   lipgloss.Color
	Mid    lipgloss.Color
	Low    lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:   "classic",
		Probe:  lipgloss.Color("#1f77b4"),
		Grid:   lipgloss.Color("#888888"),
		Header: lipgloss.Color("86"),
		Label:  lipgloss.Color("245"),
		Value:  lipgloss.Color("252"),
		Graph:  lipgloss.Color("49"),
		Muted:  lipgloss.Color("240"),
		High:   lipgloss.Color("#00ff88"),
		Mid:    lipgloss.Color("#ffcc00"),
		Low:    lipgloss.Color("#ff4444"),
	}

	ThemeDark = Theme{
		Name:   "dark",
		Probe:  lipgloss.Color("#ff00ff"),
		Grid:   lipgloss.Color("#444466"),
		Header: lipgloss.Color("#00ffff"),
		Label:  lipgloss.Color("#888899"),
		Value:  lipgloss.Color("#ffffff"),
		Graph:  lipgloss.Color("#ffff00"),
		Muted:  lipgloss.Color("#666688"),
		High:   lipgloss.Color("#00ff00"),
		Mid:    lipgloss.Color("#ff8800"),
		Low:    lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Probe:  lipgloss.Color("#00a8cc"),
		Grid:   lipgloss.Color("#4488aa"),
		Header: lipgloss.Color("#ffd700"),
		Label:  lipgloss.Color("#4488aa"),
		Value:  lipgloss.Color("#e0f0ff"),
		Graph:  lipgloss.Color("#0077be"),
		Muted:  lipgloss.Color("#335577"),
		High:   lipgloss.Color("#00ff88"),
		Mid:    lipgloss.Color("#ffcc00"),
		Low:    lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{ThemeClassic, ThemeDark, ThemeOcean}
)

// GetTheme returns the named theme, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
