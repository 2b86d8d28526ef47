// Package ui provides the visual styling for the aws-shell prompt surface:
// color themes, the toggle toolbar, and the completion menu.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette shared by both themes.
var (
	accentBlue   = lipgloss.Color("#2196F3")
	accentOrange = lipgloss.Color("#FF9900") // AWS orange
	successGreen = lipgloss.Color("#8BC34A")
	warnRed      = lipgloss.Color("#e53935")

	lightForeground = lipgloss.Color("#101F38")
	lightMuted      = lipgloss.Color("#6b7685")
	lightBorder     = lipgloss.Color("#dce0e5")
	lightBar        = lipgloss.Color("#e1e4e8")

	darkForeground = lipgloss.Color("#f2f2f2")
	darkMuted      = lipgloss.Color("#7a8699")
	darkBorder     = lipgloss.Color("#2a3850")
	darkBar        = lipgloss.Color("#1e2a3d")
)

// Theme holds one color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Bar        lipgloss.Color
	Accent     lipgloss.Color
	On         lipgloss.Color
	Off        lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light color scheme.
func LightTheme() Theme {
	return Theme{
		Foreground: lightForeground,
		Muted:      lightMuted,
		Border:     lightBorder,
		Bar:        lightBar,
		Accent:     accentOrange,
		On:         successGreen,
		Off:        warnRed,
		IsDark:     false,
	}
}

// DarkTheme returns the dark color scheme.
func DarkTheme() Theme {
	return Theme{
		Foreground: darkForeground,
		Muted:      darkMuted,
		Border:     darkBorder,
		Bar:        darkBar,
		Accent:     accentOrange,
		On:         successGreen,
		Off:        warnRed,
		IsDark:     true,
	}
}

// ResolveTheme maps the persisted theme setting to a Theme. "auto" (and
// anything unrecognized) asks the terminal for its background color.
func ResolveTheme(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		if termenv.HasDarkBackground() {
			return DarkTheme()
		}
		return LightTheme()
	}
}

// Styles holds the styled components of the prompt surface.
type Styles struct {
	Theme Theme

	Prompt     lipgloss.Style
	Input      lipgloss.Style
	Suggestion lipgloss.Style

	MenuItem     lipgloss.Style
	MenuSelected lipgloss.Style

	DocPanel      lipgloss.Style
	DocPanelTitle lipgloss.Style

	Toolbar    lipgloss.Style
	ToolbarKey lipgloss.Style
	ToolbarOn  lipgloss.Style
	ToolbarOff lipgloss.Style
	ViMode     lipgloss.Style
}

// NewStyles builds the component styles for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Prompt:     lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		Input:      lipgloss.NewStyle().Foreground(theme.Foreground),
		Suggestion: lipgloss.NewStyle().Foreground(theme.Muted),

		MenuItem:     lipgloss.NewStyle().Foreground(theme.Muted),
		MenuSelected: lipgloss.NewStyle().Foreground(theme.Foreground).Background(theme.Bar).Bold(true),

		DocPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		DocPanelTitle: lipgloss.NewStyle().Foreground(accentBlue).Bold(true),

		Toolbar:    lipgloss.NewStyle().Background(theme.Bar).Foreground(theme.Foreground),
		ToolbarKey: lipgloss.NewStyle().Background(theme.Bar).Foreground(theme.Accent).Bold(true),
		ToolbarOn:  lipgloss.NewStyle().Background(theme.Bar).Foreground(theme.On),
		ToolbarOff: lipgloss.NewStyle().Background(theme.Bar).Foreground(theme.Off),
		ViMode:     lipgloss.NewStyle().Background(theme.Bar).Foreground(accentBlue).Bold(true),
	}
}

// DefaultStyles builds styles for the auto-detected theme.
func DefaultStyles() Styles {
	return NewStyles(ResolveTheme("auto"))
}
