package shell

import "strings"

// Completer is what the shell needs from the completion engine: the parsed
// meaning of the partially typed line.
type Completer interface {
	CurrentCommand() string
	LastOption() string
}

// DocsProvider returns documentation text for a command or one of its
// options.
type DocsProvider interface {
	ExtractDescription(command string) string
	ExtractParam(command, option string) string
}

// DocPanelUpdater recomputes the documentation panel content when the input
// has been idle. Content is always recomputed from scratch, never patched.
type DocPanelUpdater struct {
	completer Completer
	docs      DocsProvider
	showHelp  func() bool
}

// NewDocPanelUpdater wires the updater to its collaborators. showHelp is
// read on every refresh so a toggle takes effect without rewiring.
func NewDocPanelUpdater(completer Completer, docs DocsProvider, showHelp func() bool) *DocPanelUpdater {
	return &DocPanelUpdater{completer: completer, docs: docs, showHelp: showHelp}
}

// Refresh computes the panel content for the current buffer text. When help
// is disabled it reports ok=false and the panel must not be touched. An
// empty buffer clears the panel. Otherwise the last recognized option's help
// wins over the command description.
func (u *DocPanelUpdater) Refresh(buffer string) (content string, ok bool) {
	if !u.showHelp() {
		return "", false
	}
	if strings.TrimSpace(buffer) == "" {
		return "", true
	}
	command := u.completer.CurrentCommand()
	if option := u.completer.LastOption(); option != "" {
		return u.docs.ExtractParam(command, option), true
	}
	return u.docs.ExtractDescription(command), true
}
