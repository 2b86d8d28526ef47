package main

import "github.com/charmbracelet/bubbles/key"

// keyMap binds the shell-level keys. Function keys mirror the classic
// aws-shell bindings; everything else falls through to the input buffer.
type keyMap struct {
	ToggleFuzzy   key.Binding
	ToggleKeys    key.Binding
	ToggleColumns key.Binding
	ToggleHelp    key.Binding
	FocusDocs     key.Binding
	Exit          key.Binding

	Submit       key.Binding
	Interrupt    key.Binding
	EndOfInput   key.Binding
	Complete     key.Binding
	CompleteBack key.Binding
	HistoryPrev  key.Binding
	HistoryNext  key.Binding
	Escape       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ToggleFuzzy:   key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "toggle fuzzy matching")),
		ToggleKeys:    key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "toggle vi bindings")),
		ToggleColumns: key.NewBinding(key.WithKeys("f4"), key.WithHelp("F4", "toggle completion columns")),
		ToggleHelp:    key.NewBinding(key.WithKeys("f5"), key.WithHelp("F5", "toggle help panel")),
		FocusDocs:     key.NewBinding(key.WithKeys("f9"), key.WithHelp("F9", "focus documentation")),
		Exit:          key.NewBinding(key.WithKeys("f10"), key.WithHelp("F10", "exit")),

		Submit:       key.NewBinding(key.WithKeys("enter")),
		Interrupt:    key.NewBinding(key.WithKeys("ctrl+c")),
		EndOfInput:   key.NewBinding(key.WithKeys("ctrl+d")),
		Complete:     key.NewBinding(key.WithKeys("tab")),
		CompleteBack: key.NewBinding(key.WithKeys("shift+tab")),
		HistoryPrev:  key.NewBinding(key.WithKeys("up")),
		HistoryNext:  key.NewBinding(key.WithKeys("down")),
		Escape:       key.NewBinding(key.WithKeys("esc")),
	}
}
