package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the live view colour scheme.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Primary: lipgloss.Color("#00ffff"),
		Accent:  lipgloss.Color("#ff00ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Warning: lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"), // green phosphor
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Warning: lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Warning: lipgloss.Color("#ffaa00"),
	}
)

var Themes = []Theme{ThemeCyberpunk, ThemeRetroGreen, ThemeMinimal}

var CurrentTheme = ThemeCyberpunk

func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme cycles to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
