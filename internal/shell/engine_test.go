package shell

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedInterface plays back a fixed sequence of read results.
type scriptedInterface struct {
	results []Result
	next    int
	closed  bool
	cleared int
	redraws int
}

func (f *scriptedInterface) ReadLine() (Result, error) {
	if f.next >= len(f.results) {
		return Result{Kind: ResultEOF}, nil
	}
	r := f.results[f.next]
	f.next++
	return r, nil
}

func (f *scriptedInterface) ClearDocs()      { f.cleared++ }
func (f *scriptedInterface) RequestRedraw()  { f.redraws++ }
func (f *scriptedInterface) Close() error    { f.closed = true; return nil }

type scriptedBuilder struct {
	interfaces []*scriptedInterface
	builds     int
}

func (b *scriptedBuilder) Build() (Interface, error) {
	if b.builds >= len(b.interfaces) {
		return nil, errors.New("no more interfaces scripted")
	}
	iface := b.interfaces[b.builds]
	b.builds++
	return iface, nil
}

type memStore struct {
	writes    int
	reloads   int
	reloadErr error
}

func (s *memStore) Write() error  { s.writes++; return nil }
func (s *memStore) Reload() error { s.reloads++; return s.reloadErr }

type queueWatcher struct {
	changes []bool
	next    int
}

func (w *queueWatcher) Changed() bool {
	if w.next >= len(w.changes) {
		return false
	}
	c := w.changes[w.next]
	w.next++
	return c
}

type recordingHistory struct {
	lines []string
}

func (h *recordingHistory) Append(line string) error {
	h.lines = append(h.lines, line)
	return nil
}

func (h *recordingHistory) Entries() []string { return h.lines }

// quietDispatcher returns a dispatcher whose subprocesses are stubbed out,
// recording the shell command strings it would have run.
func quietDispatcher(hist HistoryView, ran *[]string) *Dispatcher {
	d := NewDispatcher("aws", hist, zap.NewNop())
	d.runCommand = func(cmd *exec.Cmd) error {
		*ran = append(*ran, cmd.Args[len(cmd.Args)-1])
		return nil
	}
	return d
}

func newTestEngine(b *scriptedBuilder, store *memStore, w ChangeWatcher, hist *recordingHistory, ran *[]string) *Engine {
	return NewEngine(EngineParams{
		Builder:    b,
		Dispatcher: quietDispatcher(hist, ran),
		Store:      store,
		Watcher:    w,
		History:    hist,
		Logger:     zap.NewNop(),
	})
}

func TestQuitExitsAndPersists(t *testing.T) {
	for _, line := range []string{"quit", "exit", "  quit  "} {
		t.Run(line, func(t *testing.T) {
			var ran []string
			b := &scriptedBuilder{interfaces: []*scriptedInterface{
				{results: []Result{{Kind: ResultLine, Line: line}}},
			}}
			store := &memStore{}
			e := newTestEngine(b, store, nil, &recordingHistory{}, &ran)

			require.NoError(t, e.Run())
			assert.Equal(t, 1, b.builds)
			assert.Equal(t, 1, store.writes, "quit must persist configuration")
			assert.True(t, b.interfaces[0].closed)
			assert.Empty(t, ran, "quit must not launch a subprocess")
			assert.Equal(t, StateExiting, e.State())
		})
	}
}

func TestQuitSubstringsDoNotExit(t *testing.T) {
	var ran []string
	b := &scriptedBuilder{interfaces: []*scriptedInterface{
		{results: []Result{
			{Kind: ResultLine, Line: "quitter"},
			{Kind: ResultLine, Line: "exit now"},
			{Kind: ResultEOF},
		}},
	}}
	e := newTestEngine(b, &memStore{}, nil, &recordingHistory{}, &ran)

	require.NoError(t, e.Run())
	assert.Equal(t, []string{"aws quitter", "aws exit now"}, ran)
}

func TestEOFAndInterruptPersist(t *testing.T) {
	for name, kind := range map[string]ResultKind{"eof": ResultEOF, "interrupt": ResultInterrupt} {
		t.Run(name, func(t *testing.T) {
			var ran []string
			b := &scriptedBuilder{interfaces: []*scriptedInterface{
				{results: []Result{{Kind: kind}}},
			}}
			store := &memStore{}
			e := newTestEngine(b, store, nil, &recordingHistory{}, &ran)

			require.NoError(t, e.Run())
			assert.Equal(t, 1, store.writes)
			assert.True(t, b.interfaces[0].closed)
		})
	}
}

func TestRebuildReplacesInterfaceWholesale(t *testing.T) {
	var ran []string
	ifaces := []*scriptedInterface{
		{results: []Result{{Kind: ResultRebuild}}},
		{results: []Result{{Kind: ResultRebuild}}},
		{results: []Result{{Kind: ResultRebuild}}},
		{results: []Result{{Kind: ResultEOF}}},
	}
	b := &scriptedBuilder{interfaces: ifaces}
	e := newTestEngine(b, &memStore{}, nil, &recordingHistory{}, &ran)

	require.NoError(t, e.Run())

	// Three toggle-triggered rebuilds produce exactly four builds, and
	// every superseded instance is closed before its successor reads.
	assert.Equal(t, 4, b.builds)
	for i, f := range ifaces {
		assert.True(t, f.closed, "interface %d must be closed", i)
	}
	assert.Empty(t, ran, "cancelled reads must not dispatch")
}

func TestLinesAreRecordedAndDispatched(t *testing.T) {
	var ran []string
	b := &scriptedBuilder{interfaces: []*scriptedInterface{
		{results: []Result{
			{Kind: ResultLine, Line: "ec2 describe-instances"},
			{Kind: ResultLine, Line: "!ls"},
			{Kind: ResultLine, Line: "quit"},
		}},
	}}
	hist := &recordingHistory{}
	e := newTestEngine(b, &memStore{}, nil, hist, &ran)

	require.NoError(t, e.Run())
	assert.Equal(t, []string{"ec2 describe-instances", "!ls", "quit"}, hist.lines,
		"history keeps lines verbatim, markers included")
	assert.Equal(t, []string{"aws ec2 describe-instances", "ls"}, ran)
	assert.GreaterOrEqual(t, b.interfaces[0].cleared, 2, "doc panel cleared before each launch")
}

func TestExternalConfigChangeRebuilds(t *testing.T) {
	var ran []string
	b := &scriptedBuilder{interfaces: []*scriptedInterface{
		{results: []Result{{Kind: ResultLine, Line: "s3 ls"}}},
		{results: []Result{{Kind: ResultEOF}}},
	}}
	store := &memStore{}
	// Clean on first read, dirty on the one after the dispatch.
	w := &queueWatcher{changes: []bool{false, true}}
	e := newTestEngine(b, store, w, &recordingHistory{}, &ran)

	require.NoError(t, e.Run())
	assert.Equal(t, 1, store.reloads)
	assert.Equal(t, 2, b.builds, "external edit must rebuild the interface")
	assert.True(t, b.interfaces[0].closed)
}

func TestReloadFailureKeepsOldInterface(t *testing.T) {
	var ran []string
	b := &scriptedBuilder{interfaces: []*scriptedInterface{
		{results: []Result{{Kind: ResultLine, Line: "s3 ls"}, {Kind: ResultEOF}}},
	}}
	store := &memStore{reloadErr: errors.New("corrupt rc")}
	w := &queueWatcher{changes: []bool{false, true}}
	e := newTestEngine(b, store, w, &recordingHistory{}, &ran)

	require.NoError(t, e.Run())
	assert.Equal(t, 1, b.builds)
}

func TestLaunchFailureIsFatal(t *testing.T) {
	b := &scriptedBuilder{interfaces: []*scriptedInterface{
		{results: []Result{{Kind: ResultLine, Line: "s3 ls"}}},
	}}
	hist := &recordingHistory{}
	d := NewDispatcher("aws", hist, zap.NewNop())
	d.runCommand = func(cmd *exec.Cmd) error { return errors.New("sh: not found") }
	e := NewEngine(EngineParams{
		Builder:    b,
		Dispatcher: d,
		Store:      &memStore{},
		History:    hist,
		Logger:     zap.NewNop(),
	})

	err := e.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3 ls")
	assert.True(t, b.interfaces[0].closed)
}

func TestBuildFailureIsFatal(t *testing.T) {
	e := NewEngine(EngineParams{
		Builder:    &scriptedBuilder{},
		Dispatcher: NewDispatcher("aws", &recordingHistory{}, zap.NewNop()),
		Store:      &memStore{},
		Logger:     zap.NewNop(),
	})
	assert.Error(t, e.Run())
}
