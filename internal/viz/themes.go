package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the palette the model draws with.
type Theme struct {
	Name      string
	Primary   lipgloss.Color // bars, headings
	Secondary lipgloss.Color // visited nodes
	Accent    lipgloss.Color // traced path
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color // sorted bars, start node
	Warning   lipgloss.Color // active bars
	Error     lipgloss.Color // end node
}

var (
	ThemeDefault = Theme{
		Name:      "default",
		Primary:   lipgloss.Color("#5fafff"),
		Secondary: lipgloss.Color("#00d7d7"),
		Accent:    lipgloss.Color("#af87ff"),
		Text:      lipgloss.Color("#e4e4e4"),
		Muted:     lipgloss.Color("#626262"),
		Success:   lipgloss.Color("#5fd75f"),
		Warning:   lipgloss.Color("#ff5f5f"),
		Error:     lipgloss.Color("#ffaf00"),
	}

	ThemeRetro = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00cc00"),
		Secondary: lipgloss.Color("#008800"),
		Accent:    lipgloss.Color("#ccff66"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Success:   lipgloss.Color("#88ff88"),
		Warning:   lipgloss.Color("#ffff00"),
		Error:     lipgloss.Color("#ff8800"),
	}

	ThemeMono = Theme{
		Name:      "mono",
		Primary:   lipgloss.Color("#bcbcbc"),
		Secondary: lipgloss.Color("#8a8a8a"),
		Accent:    lipgloss.Color("#ffffff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#4e4e4e"),
		Success:   lipgloss.Color("#ffffff"),
		Warning:   lipgloss.Color("#0087ff"),
		Error:     lipgloss.Color("#d0d0d0"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ff4444"),
		Error:     lipgloss.Color("#ffcc00"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"),
		Secondary: lipgloss.Color("#feca57"),
		Accent:    lipgloss.Color("#ff9ff3"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Success:   lipgloss.Color("#5fd068"),
		Warning:   lipgloss.Color("#48dbfb"),
		Error:     lipgloss.Color("#ff4757"),
	}

	CurrentTheme = ThemeDefault

	Themes = []Theme{
		ThemeDefault,
		ThemeRetro,
		ThemeMono,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, or the default theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
	SetTheme(names[0])
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
