// Package ui layout constants for consistent spacing and dimensions.
package ui

const (
	// Input area.
	PromptText  = "aws> "
	InputHeight = 1

	// Completion menu.
	MenuMaxRows    = 8
	MenuColumnGap  = 2
	MenuMinColumns = 1

	// Documentation panel.
	DocPanelRatio    = 0.4 // share of terminal height when help is shown
	DocPanelMinLines = 4
	PanelBorderWidth = 2
	PanelPaddingH    = 1

	// Toolbar.
	ToolbarHeight = 1

	// Responsive breakpoints.
	MinimumTerminalWidth = 40
	DefaultWidth         = 80
	DefaultHeight        = 24
)
