package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Menu is the completion candidate list shown under the prompt, rendered as
// a single column or a multi-column grid depending on configuration. The
// layout choice is fixed at construction; changing it means rebuilding the
// surface.
type Menu struct {
	styles   Styles
	columns  bool
	width    int
	items    []string
	selected int
}

// NewMenu creates a menu. columns selects the multi-column grid layout.
func NewMenu(styles Styles, columns bool) Menu {
	return Menu{styles: styles, columns: columns, width: DefaultWidth, selected: -1}
}

// SetWidth sets the available render width.
func (m *Menu) SetWidth(w int) { m.width = w }

// SetItems replaces the candidate list and clears the selection.
func (m *Menu) SetItems(items []string) {
	m.items = items
	m.selected = -1
}

// Items returns the current candidates.
func (m *Menu) Items() []string { return m.items }

// Selected returns the highlighted candidate, or "" when none is.
func (m *Menu) Selected() string {
	if m.selected < 0 || m.selected >= len(m.items) {
		return ""
	}
	return m.items[m.selected]
}

// Next advances the highlight, wrapping around.
func (m *Menu) Next() {
	if len(m.items) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.items)
}

// Prev moves the highlight back, wrapping around.
func (m *Menu) Prev() {
	if len(m.items) == 0 {
		return
	}
	if m.selected <= 0 {
		m.selected = len(m.items) - 1
		return
	}
	m.selected--
}

// Render draws the menu, or "" when there is nothing to offer.
func (m *Menu) Render() string {
	if len(m.items) == 0 {
		return ""
	}
	if m.columns {
		return m.renderGrid()
	}
	return m.renderList()
}

func (m *Menu) renderList() string {
	max := len(m.items)
	if max > MenuMaxRows {
		max = MenuMaxRows
	}
	lines := make([]string, 0, max)
	for i := 0; i < max; i++ {
		lines = append(lines, m.styleFor(i).Render(m.items[i]))
	}
	return strings.Join(lines, "\n")
}

func (m *Menu) renderGrid() string {
	colWidth := 0
	for _, it := range m.items {
		if len(it) > colWidth {
			colWidth = len(it)
		}
	}
	colWidth += MenuColumnGap

	cols := m.width / colWidth
	if cols < MenuMinColumns {
		cols = MenuMinColumns
	}
	rows := (len(m.items) + cols - 1) / cols
	if rows > MenuMaxRows {
		rows = MenuMaxRows
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		var cells []string
		for c := 0; c < cols; c++ {
			i := r + c*rows
			if i >= len(m.items) {
				break
			}
			cell := m.styleFor(i).Render(padRight(m.items[i], colWidth))
			cells = append(cells, cell)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		if r < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m *Menu) styleFor(i int) lipgloss.Style {
	if i == m.selected {
		return m.styles.MenuSelected
	}
	return m.styles.MenuItem
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}
