package tui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/akyairhashvil/notifit/internal/models"
)

type Theme struct {
	Name      string
	Base      lipgloss.Style
	Border    lipgloss.Color
	Header    lipgloss.Style
	Row       lipgloss.Style
	Cursor    lipgloss.Style
	Selected  lipgloss.Style
	Error     lipgloss.Style
	OK        lipgloss.Style
	Input     lipgloss.Style
	Focused   lipgloss.Style
	Dim       lipgloss.Style
	Highlight lipgloss.Style
	Badges    map[models.Level]lipgloss.Style
}

// Badge styles mirror the web tool's level chips.
var defaultBadges = map[models.Level]lipgloss.Style{
	models.LevelInformation: badge("#e3f2fd", "#1565c0"),
	models.LevelWarning:     badge("#fff3e0", "#ef6c00"),
	models.LevelUrgent:      badge("#fce4ec", "#c62828"),
	models.LevelCritical:    badge("#b71c1c", "#ffffff"),
}

func badge(bg, fg string) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(lipgloss.Color(fg)).Bold(true).Padding(0, 1)
}

var Themes = map[string]Theme{
	"default": {
		Name:      "Default",
		Base:      lipgloss.NewStyle().Margin(0, 1),
		Border:    lipgloss.Color("63"),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Row:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Selected:  lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		OK:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("205")).Padding(0, 1),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Badges:    defaultBadges,
	},
	"dracula": {
		Name:      "Dracula",
		Base:      lipgloss.NewStyle().Margin(0, 1),
		Border:    lipgloss.Color("62"),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true),
		Row:       lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Selected:  lipgloss.NewStyle().Background(lipgloss.Color("60")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		OK:        lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("50")).Padding(0, 1),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
		Badges: map[models.Level]lipgloss.Style{
			models.LevelInformation: badge("#44475a", "#8be9fd"),
			models.LevelWarning:     badge("#44475a", "#ffb86c"),
			models.LevelUrgent:      badge("#44475a", "#ff79c6"),
			models.LevelCritical:    badge("#ff5555", "#f8f8f2"),
		},
	},
	"mono": {
		Name:      "Monochrome",
		Base:      lipgloss.NewStyle().Margin(0, 1),
		Border:    lipgloss.Color("245"),
		Header:    lipgloss.NewStyle().Bold(true),
		Row:       lipgloss.NewStyle(),
		Cursor:    lipgloss.NewStyle().Bold(true).Underline(true),
		Selected:  lipgloss.NewStyle().Reverse(true),
		Error:     lipgloss.NewStyle().Bold(true),
		OK:        lipgloss.NewStyle(),
		Input:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		Focused:   lipgloss.NewStyle().Bold(true),
		Dim:       lipgloss.NewStyle().Faint(true),
		Highlight: lipgloss.NewStyle().Underline(true),
		Badges: map[models.Level]lipgloss.Style{
			models.LevelInformation: lipgloss.NewStyle().Padding(0, 1),
			models.LevelWarning:     lipgloss.NewStyle().Padding(0, 1).Bold(true),
			models.LevelUrgent:      lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true),
			models.LevelCritical:    lipgloss.NewStyle().Padding(0, 1).Reverse(true),
		},
	},
}

// CurrentTheme holds the currently active theme.
// We initialize it to default to avoid nil pointer dereferences.
var CurrentTheme = Themes["default"]

// SetTheme switches the active theme and reports whether name exists.
func SetTheme(name string) bool {
	if t, ok := Themes[name]; ok {
		CurrentTheme = t
		return true
	}
	return false
}

// ThemeNames lists theme keys, default first.
func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for k := range Themes {
		if k != "default" {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return append([]string{"default"}, names...)
}

func themeKey(t Theme) string {
	for k, v := range Themes {
		if v.Name == t.Name {
			return k
		}
	}
	return "default"
}

func levelBadge(l models.Level) string {
	st, ok := CurrentTheme.Badges[l]
	if !ok {
		st = lipgloss.NewStyle().Padding(0, 1)
	}
	return st.Render(l.Badge())
}
