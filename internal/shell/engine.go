// Package shell implements the core of the interactive aws wrapper: the
// read/dispatch loop, line classification, the settings repository with its
// rebuild protocol, and the idle documentation refresh. The terminal surface
// itself is built by a collaborator behind the Builder interface, so the
// engine stays testable without a terminal.
package shell

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the engine's position in its loop. The engine moves
// READING → DISPATCHING → (READING | EXITING), with the side transition
// READING → READING through REBUILDING whenever a toggle cancels the
// current read.
type State int

const (
	StateReading State = iota
	StateDispatching
	StateRebuilding
	StateExiting
)

func (s State) String() string {
	switch s {
	case StateReading:
		return "reading"
	case StateDispatching:
		return "dispatching"
	case StateRebuilding:
		return "rebuilding"
	case StateExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// ResultKind says why a blocking read returned.
type ResultKind int

const (
	// ResultLine carries one submitted line.
	ResultLine ResultKind = iota
	// ResultRebuild is the internal cancellation: a toggle changed
	// configuration and the surface must be rebuilt. Pending input is
	// discarded; nothing is dispatched.
	ResultRebuild
	// ResultEOF is end of input (Ctrl-D, F10).
	ResultEOF
	// ResultInterrupt is the terminal interrupt (Ctrl-C).
	ResultInterrupt
)

// Result is the outcome of one blocking read.
type Result struct {
	Kind ResultKind
	Line string
}

// Interface is one live interactive surface. ReadLine blocks until the user
// submits a line or the read is cancelled. At most one Interface is live at
// a time; the engine replaces it wholesale on rebuild, never mutates it.
type Interface interface {
	ReadLine() (Result, error)
	ClearDocs()
	RequestRedraw()
	Close() error
}

// Builder assembles a fresh Interface from current configuration. Building
// must be side-effect-free apart from registering live key-binding
// callbacks (and the settings listener).
type Builder interface {
	Build() (Interface, error)
}

// ConfigStore is the persisted configuration as the engine sees it.
type ConfigStore interface {
	Write() error
	Reload() error
}

// ChangeWatcher reports whether the config file changed on disk since the
// last call.
type ChangeWatcher interface {
	Changed() bool
}

// HistoryRecorder records submitted lines.
type HistoryRecorder interface {
	Append(line string) error
}

// EngineParams bundles the engine's collaborators.
type EngineParams struct {
	Builder    Builder
	Dispatcher *Dispatcher
	Store      ConfigStore
	Watcher    ChangeWatcher // optional
	History    HistoryRecorder
	Logger     *zap.Logger
}

// Engine owns the read/dispatch loop and the cancel-and-rebuild protocol.
type Engine struct {
	builder    Builder
	dispatcher *Dispatcher
	store      ConfigStore
	watcher    ChangeWatcher
	history    HistoryRecorder
	logger     *zap.Logger

	iface        Interface
	needsRebuild bool
	state        State
}

// NewEngine wires an engine. Logger is required; pass zap.NewNop in tests.
func NewEngine(p EngineParams) *Engine {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		builder:    p.Builder,
		dispatcher: p.Dispatcher,
		store:      p.Store,
		watcher:    p.Watcher,
		history:    p.History,
		logger:     logger.With(zap.String("session", uuid.NewString())),
		state:      StateReading,
	}
}

// State returns the engine's current loop state.
func (e *Engine) State() State { return e.state }

// Run drives the loop until end of input, interrupt, or quit/exit. The
// configuration is persisted on every exit path.
func (e *Engine) Run() error {
	e.logger.Info("shell session started")
	for {
		e.state = StateReading
		iface, err := e.currentInterface()
		if err != nil {
			e.state = StateExiting
			return err
		}

		res, err := iface.ReadLine()
		if err != nil {
			e.state = StateExiting
			e.closeInterface()
			return fmt.Errorf("read input: %w", err)
		}

		switch res.Kind {
		case ResultRebuild:
			// The toggle already updated configuration; partially
			// entered text dies with the old surface.
			e.state = StateRebuilding
			e.needsRebuild = true
			e.logger.Debug("rebuild requested, input discarded")

		case ResultEOF, ResultInterrupt:
			e.logger.Info("shell session ending", zap.Bool("interrupt", res.Kind == ResultInterrupt))
			return e.exit()

		case ResultLine:
			e.state = StateDispatching
			if e.history != nil {
				if err := e.history.Append(res.Line); err != nil {
					e.logger.Warn("history append failed", zap.Error(err))
				}
			}
			outcome, err := e.dispatcher.Dispatch(res.Line, iface)
			if err != nil {
				e.state = StateExiting
				e.closeInterface()
				return fmt.Errorf("dispatch %q: %w", res.Line, err)
			}
			if outcome == OutcomeExit {
				return e.exit()
			}
		}
	}
}

// currentInterface returns the live surface, building a fresh one first if
// none exists, a rebuild is pending, or the config file changed on disk.
func (e *Engine) currentInterface() (Interface, error) {
	if e.watcher != nil && e.watcher.Changed() {
		if err := e.store.Reload(); err != nil {
			e.logger.Warn("config reload failed", zap.Error(err))
		} else {
			e.logger.Info("config file changed externally, rebuilding")
			e.needsRebuild = true
		}
	}

	if e.iface != nil && !e.needsRebuild {
		return e.iface, nil
	}
	e.closeInterface()

	iface, err := e.builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build interface: %w", err)
	}
	e.iface = iface
	e.needsRebuild = false
	e.logger.Debug("interface built")
	return iface, nil
}

func (e *Engine) closeInterface() {
	if e.iface == nil {
		return
	}
	if err := e.iface.Close(); err != nil {
		e.logger.Warn("interface close failed", zap.Error(err))
	}
	e.iface = nil
}

// exit persists configuration and releases the surface. Every exit path
// persists, including quit/exit, so toggles flipped mid-session survive.
func (e *Engine) exit() error {
	e.state = StateExiting
	if err := e.store.Write(); err != nil {
		e.logger.Warn("config persist failed", zap.Error(err))
	}
	e.closeInterface()
	e.logger.Info("shell session ended")
	return nil
}
