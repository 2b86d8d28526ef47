package main

import (
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func viInput(value string, pos int) textinput.Model {
	ti := textinput.New()
	ti.SetValue(value)
	ti.SetCursor(pos)
	return ti
}

func viKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViMotions(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		pos     int
		key     string
		wantPos int
	}{
		{"h moves left", "aws s3 ls", 4, "h", 3},
		{"l moves right", "aws s3 ls", 4, "l", 5},
		{"0 jumps to start", "aws s3 ls", 6, "0", 0},
		{"$ jumps to end", "aws s3 ls", 2, "$", 9},
		{"w next word", "aws s3 ls", 0, "w", 4},
		{"w from mid-word", "aws s3 ls", 1, "w", 4},
		{"w at last word stays at end", "aws s3 ls", 7, "w", 9},
		{"b previous word", "aws s3 ls", 7, "b", 4},
		{"b from word start", "aws s3 ls", 4, "b", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ti := viInput(tc.value, tc.pos)
			mode := applyViNormal(&ti, viKey(tc.key))
			assert.Equal(t, viNormal, mode)
			assert.Equal(t, tc.wantPos, ti.Position())
		})
	}
}

func TestViEdits(t *testing.T) {
	ti := viInput("ec2 stop", 4)
	applyViNormal(&ti, viKey("x"))
	assert.Equal(t, "ec2 top", ti.Value())
	assert.Equal(t, 4, ti.Position())

	ti = viInput("ec2 stop", 3)
	applyViNormal(&ti, viKey("D"))
	assert.Equal(t, "ec2", ti.Value())

	ti = viInput("", 0)
	applyViNormal(&ti, viKey("x")) // must not panic on empty buffer
	assert.Equal(t, "", ti.Value())
}

func TestViInsertTransitions(t *testing.T) {
	ti := viInput("s3 ls", 2)

	assert.Equal(t, viInsert, applyViNormal(&ti, viKey("i")))
	assert.Equal(t, 2, ti.Position())

	ti.SetCursor(2)
	assert.Equal(t, viInsert, applyViNormal(&ti, viKey("a")))
	assert.Equal(t, 3, ti.Position())

	assert.Equal(t, viInsert, applyViNormal(&ti, viKey("A")))
	assert.Equal(t, 5, ti.Position())

	assert.Equal(t, viInsert, applyViNormal(&ti, viKey("I")))
	assert.Equal(t, 0, ti.Position())
}

func TestViSwallowsUnknownKeys(t *testing.T) {
	ti := viInput("s3 ls", 2)
	mode := applyViNormal(&ti, viKey("q"))
	assert.Equal(t, viNormal, mode)
	assert.Equal(t, "s3 ls", ti.Value(), "unbound keys never insert")
}

func TestViModeIndicator(t *testing.T) {
	assert.Equal(t, "NORMAL", viNormal.indicator())
	assert.Equal(t, "INSERT", viInsert.indicator())
}
