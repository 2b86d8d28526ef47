package shell

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Kind classifies a submitted line into its dispatch path.
type Kind int

const (
	// KindQuit terminates the shell (`quit` or `exit`, trimmed, exact).
	KindQuit Kind = iota
	// KindSpecial is a `.`-prefixed shell-level utility. Only `.edit` is
	// defined; the rest are reserved and dispatch as no-ops.
	KindSpecial
	// KindShellEscape is a `!`-prefixed raw system command.
	KindShellEscape
	// KindPassthrough forwards the line to the wrapped CLI.
	KindPassthrough
)

// Classify determines the dispatch path for a raw line, in priority order.
func Classify(line string) Kind {
	switch strings.TrimSpace(line) {
	case "quit", "exit":
		return KindQuit
	}
	if strings.HasPrefix(line, ".") {
		return KindSpecial
	}
	if strings.HasPrefix(line, "!") {
		return KindShellEscape
	}
	return KindPassthrough
}

// EditScript builds the `.edit` scratch buffer: every history entry that is
// not a special command or shell escape, prefixed with the wrapped CLI's
// invocation name, one per line.
func EditScript(entries []string, cliName string) string {
	var lines []string
	for _, e := range entries {
		if strings.HasPrefix(e, ".") || strings.HasPrefix(e, "!") {
			continue
		}
		lines = append(lines, cliName+" "+e)
	}
	return strings.Join(lines, "\n")
}

// Outcome is what the engine does after a dispatch.
type Outcome int

const (
	// OutcomeContinue keeps the read loop going.
	OutcomeContinue Outcome = iota
	// OutcomeExit terminates the shell.
	OutcomeExit
)

// DocPanel is the dispatcher's view of the live interface: enough to blank
// the documentation panel before handing the terminal to a subprocess.
type DocPanel interface {
	ClearDocs()
	RequestRedraw()
}

// HistoryView exposes the submitted-line record to the dispatcher.
type HistoryView interface {
	Entries() []string
}

// Dispatcher classifies submitted lines and executes the resulting action.
// All subprocesses run synchronously and block the engine; their exit status
// is never inspected. Launch failures (missing editor, unusable shell)
// propagate as fatal.
type Dispatcher struct {
	cliName string
	history HistoryView
	logger  *zap.Logger
	extraEnv []string

	// runCommand is swapped out in tests.
	runCommand func(cmd *exec.Cmd) error
}

// NewDispatcher creates a dispatcher forwarding to the CLI named cliName
// (normally "aws").
func NewDispatcher(cliName string, history HistoryView, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		cliName:    cliName,
		history:    history,
		logger:     logger,
		runCommand: func(cmd *exec.Cmd) error { return cmd.Run() },
	}
}

// SetExtraEnv appends environment entries ("KEY=value") to every launched
// subprocess, e.g. AWS_DEFAULT_PROFILE for --profile.
func (d *Dispatcher) SetExtraEnv(env []string) { d.extraEnv = env }

// Dispatch executes one submitted line. panel may be nil when no interface
// is live (it never is during normal operation).
func (d *Dispatcher) Dispatch(line string, panel DocPanel) (Outcome, error) {
	switch Classify(line) {
	case KindQuit:
		d.logger.Debug("quit requested", zap.String("line", line))
		return OutcomeExit, nil

	case KindSpecial:
		if strings.HasPrefix(strings.TrimSpace(line), ".edit") {
			return OutcomeContinue, d.editHistory()
		}
		// Reserved for future special commands.
		d.logger.Debug("unknown special command ignored", zap.String("line", line))
		return OutcomeContinue, nil

	case KindShellEscape:
		d.clearPanel(panel)
		return OutcomeContinue, d.runShell(strings.TrimPrefix(line, "!"))

	default:
		d.clearPanel(panel)
		return OutcomeContinue, d.runShell(d.cliName + " " + line)
	}
}

func (d *Dispatcher) clearPanel(panel DocPanel) {
	if panel == nil {
		return
	}
	panel.ClearDocs()
	panel.RequestRedraw()
}

// editHistory writes the regenerated command script to a fresh temp file,
// blocks on an external editor, and discards the file afterward.
func (d *Dispatcher) editHistory() error {
	script := EditScript(d.history.Entries(), d.cliName)

	f, err := os.CreateTemp("", "awsshell-edit-*.sh")
	if err != nil {
		return fmt.Errorf("create edit buffer: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)

	if _, err := f.WriteString(script); err != nil {
		f.Close()
		return fmt.Errorf("write edit buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("flush edit buffer: %w", err)
	}

	editor := resolveEditor()
	d.logger.Debug("launching editor", zap.String("editor", strings.Join(editor, " ")), zap.String("file", name))
	cmd := exec.Command(editor[0], append(editor[1:], name)...)
	return d.runInTerminal(cmd)
}

// runShell executes command verbatim through the system shell.
func (d *Dispatcher) runShell(command string) error {
	d.logger.Debug("running command", zap.String("command", command))
	return d.runInTerminal(exec.Command("sh", "-c", command))
}

func (d *Dispatcher) runInTerminal(cmd *exec.Cmd) error {
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), d.extraEnv...)

	err := d.runCommand(cmd)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// Delegation, not sandboxing: the child reports its own failures
		// on the terminal.
		d.logger.Debug("command exited nonzero", zap.Int("code", exitErr.ExitCode()))
		return nil
	}
	return err
}

// resolveEditor picks the external editor for `.edit`: $EDITOR, split on
// whitespace to allow flags, falling back to vim.
func resolveEditor() []string {
	if e := strings.TrimSpace(os.Getenv("EDITOR")); e != "" {
		return strings.Fields(e)
	}
	return []string{"vim"}
}
