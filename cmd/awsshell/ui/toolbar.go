package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ToggleState is what the toolbar displays: the live value of each
// configurable behavior plus the current vi mode indicator.
type ToggleState struct {
	Fuzzy   bool
	Vi      bool
	Columns bool
	Help    bool
	// ViIndicator is "NORMAL" or "INSERT" when vi bindings are on.
	ViIndicator string
}

// RenderToolbar draws the bottom status line listing the toggle keys and
// their current values, padded to the full terminal width.
func RenderToolbar(styles Styles, width int, st ToggleState) string {
	var parts []string

	part := func(key, label string, on bool) {
		state := styles.ToolbarOff.Render("OFF")
		if on {
			state = styles.ToolbarOn.Render("ON")
		}
		parts = append(parts,
			styles.ToolbarKey.Render("["+key+"]")+
				styles.Toolbar.Render(" "+label+": ")+state)
	}

	part("F2", "Fuzzy", st.Fuzzy)

	keysLabel := "Emacs"
	if st.Vi {
		keysLabel = "Vi"
	}
	parts = append(parts,
		styles.ToolbarKey.Render("[F3]")+
			styles.Toolbar.Render(" Keys: "+keysLabel))

	part("F4", "Multi-Column", st.Columns)
	part("F5", "Help", st.Help)
	parts = append(parts,
		styles.ToolbarKey.Render("[F9]")+styles.Toolbar.Render(" Docs"),
		styles.ToolbarKey.Render("[F10]")+styles.Toolbar.Render(" Exit"))

	if st.Vi && st.ViIndicator != "" {
		parts = append(parts, styles.ViMode.Render("-- "+st.ViIndicator+" --"))
	}

	bar := strings.Join(parts, styles.Toolbar.Render("  "))
	if w := lipgloss.Width(bar); w < width {
		bar += styles.Toolbar.Render(strings.Repeat(" ", width-w))
	}
	return bar
}
