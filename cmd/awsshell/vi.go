package main

import (
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// viMode is the editing mode of the vi key-binding layer. The layer covers
// the motions and edits that make sense on a one-line command buffer; it is
// not a vim emulator.
type viMode int

const (
	viInsert viMode = iota
	viNormal
)

func (m viMode) indicator() string {
	if m == viNormal {
		return "NORMAL"
	}
	return "INSERT"
}

// applyViNormal handles one key in normal mode, mutating the input, and
// returns the next mode. Unrecognized keys are swallowed, as vi does.
func applyViNormal(ti *textinput.Model, msg tea.KeyMsg) viMode {
	value := ti.Value()
	pos := ti.Position()

	switch msg.String() {
	case "h", "left":
		ti.SetCursor(pos - 1)
	case "l", "right":
		ti.SetCursor(pos + 1)
	case "0", "home":
		ti.CursorStart()
	case "$", "end":
		ti.CursorEnd()
	case "w":
		ti.SetCursor(nextWordStart(value, pos))
	case "b":
		ti.SetCursor(prevWordStart(value, pos))
	case "x":
		if pos < len(value) {
			ti.SetValue(value[:pos] + value[pos+1:])
			ti.SetCursor(pos)
		}
	case "D":
		ti.SetValue(value[:pos])
		ti.CursorEnd()

	case "i":
		return viInsert
	case "a":
		ti.SetCursor(pos + 1)
		return viInsert
	case "A":
		ti.CursorEnd()
		return viInsert
	case "I":
		ti.CursorStart()
		return viInsert
	}
	return viNormal
}

func nextWordStart(s string, pos int) int {
	runes := []rune(s)
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return i
}

func prevWordStart(s string, pos int) int {
	runes := []rune(s)
	i := pos
	for i > 0 && (i >= len(runes) || unicode.IsSpace(runes[i-1])) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
