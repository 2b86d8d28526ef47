// This file implements the interactive prompt surface using bubbletea: the
// input buffer, completion menu, documentation side panel, and toolbar. One
// promptInterface wraps one surface; the engine replaces it wholesale
// whenever configuration changes.
package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"awsshell/cmd/awsshell/ui"
	"awsshell/internal/shell"
)

// idleTimeout is the quiet window after the last keystroke before the
// documentation panel refreshes.
const idleTimeout = 500 * time.Millisecond

// promptCompleter is the full completion surface the prompt needs; the doc
// panel updater uses only the shell.Completer subset.
type promptCompleter interface {
	shell.Completer
	Complete(text string) []string
	SetMatchFuzzy(v bool)
	Reset()
}

// idleMsg fires when the input has been quiet. seq guards against stale
// timers: every keystroke bumps the sequence, so only the newest tick wins.
type idleMsg struct {
	seq int
}

// promptModel is the bubbletea model for one interface instance.
type promptModel struct {
	input    textinput.Model
	docview  viewport.Model
	menu     ui.Menu
	styles   ui.Styles
	renderer *glamour.TermRenderer
	keys     keyMap

	settings  *shell.Settings
	completer promptCompleter
	updater   *shell.DocPanelUpdater
	logger    *zap.Logger

	// rebuildRequested is raised by the settings listener when a toggle
	// needs a rebuild; the model quits its read with ResultRebuild.
	rebuildRequested *bool

	histEntries []string
	histPos     int
	histPending string

	viEnabled bool
	viMode    viMode

	docText   string
	focusDocs bool
	idleSeq   int

	width  int
	height int
	ready  bool

	result shell.Result
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.menu.SetWidth(msg.Width)
		m.resizePanel()
		return m, nil

	case idleMsg:
		if msg.seq != m.idleSeq {
			return m, nil
		}
		m.refreshDocs()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.docview, cmd = m.docview.Update(msg)
	return m, cmd
}

func (m promptModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Interrupt):
		m.result = shell.Result{Kind: shell.ResultInterrupt}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Exit):
		m.result = shell.Result{Kind: shell.ResultEOF}
		return m, tea.Quit

	case key.Matches(msg, m.keys.EndOfInput):
		if strings.TrimSpace(m.input.Value()) == "" {
			m.result = shell.Result{Kind: shell.ResultEOF}
			return m, tea.Quit
		}
		return m.editKey(msg)

	case key.Matches(msg, m.keys.ToggleFuzzy):
		// Fuzzy matching applies live; no rebuild needed.
		v := m.settings.Toggle(shell.SettingMatchFuzzy)
		m.completer.SetMatchFuzzy(v)
		m.menu.SetItems(m.completer.Complete(m.input.Value()))
		return m, nil

	case key.Matches(msg, m.keys.ToggleKeys):
		m.settings.ToggleAndApply(shell.SettingVIBindings)
		return m.afterApply()

	case key.Matches(msg, m.keys.ToggleColumns):
		m.settings.ToggleAndApply(shell.SettingCompletionColumns)
		return m.afterApply()

	case key.Matches(msg, m.keys.ToggleHelp):
		m.settings.ToggleAndApply(shell.SettingShowHelp)
		return m.afterApply()

	case key.Matches(msg, m.keys.FocusDocs):
		m.focusDocs = !m.focusDocs
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.result = shell.Result{Kind: shell.ResultLine, Line: m.input.Value()}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Complete):
		m.menu.Next()
		m.acceptCandidate(m.menu.Selected())
		return m, nil

	case key.Matches(msg, m.keys.CompleteBack):
		m.menu.Prev()
		m.acceptCandidate(m.menu.Selected())
		return m, nil

	case key.Matches(msg, m.keys.HistoryPrev):
		if m.focusDocs {
			m.docview.ScrollUp(1)
			return m, nil
		}
		m.historyPrev()
		return m, nil

	case key.Matches(msg, m.keys.HistoryNext):
		if m.focusDocs {
			m.docview.ScrollDown(1)
			return m, nil
		}
		m.historyNext()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.viEnabled {
			m.viMode = viNormal
		}
		m.menu.SetItems(nil)
		return m, nil
	}

	return m.editKey(msg)
}

// editKey feeds a key to the editing layer: vi normal mode intercepts it,
// otherwise the input buffer takes it. Any buffer change recomputes the
// completion candidates and rearms the idle timer.
func (m promptModel) editKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.viEnabled && m.viMode == viNormal {
		m.viMode = applyViNormal(&m.input, msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}

	m.menu.SetItems(m.completer.Complete(m.input.Value()))
	m.idleSeq++
	seq := m.idleSeq
	tick := tea.Tick(idleTimeout, func(time.Time) tea.Msg { return idleMsg{seq: seq} })
	return m, tea.Batch(cmd, tick)
}

// afterApply runs after a toggle that may have requested a rebuild: the
// surface redraws once more with its stale configuration, then cancels the
// read so the engine can replace it.
func (m promptModel) afterApply() (tea.Model, tea.Cmd) {
	if m.rebuildRequested != nil && *m.rebuildRequested {
		m.result = shell.Result{Kind: shell.ResultRebuild}
		return m, tea.Quit
	}
	return m, nil
}

// refreshDocs recomputes the documentation panel from the current buffer.
func (m *promptModel) refreshDocs() {
	content, ok := m.updater.Refresh(m.input.Value())
	if !ok {
		return
	}
	m.docText = content
	m.docview.SetContent(m.renderDocs(content))
}

func (m *promptModel) renderDocs(content string) string {
	if content == "" {
		return ""
	}
	if m.renderer != nil {
		if out, err := m.renderer.Render(content); err == nil {
			return out
		}
	}
	return content
}

// acceptCandidate writes a completion candidate over the token being typed.
func (m *promptModel) acceptCandidate(cand string) {
	if cand == "" {
		return
	}
	value := m.input.Value()
	if value == "" || strings.HasSuffix(value, " ") {
		m.input.SetValue(value + cand)
	} else {
		fields := strings.Fields(value)
		fields[len(fields)-1] = cand
		m.input.SetValue(strings.Join(fields, " "))
	}
	m.input.CursorEnd()
}

func (m *promptModel) historyPrev() {
	if len(m.histEntries) == 0 || m.histPos == 0 {
		return
	}
	if m.histPos == len(m.histEntries) {
		m.histPending = m.input.Value()
	}
	m.histPos--
	m.input.SetValue(m.histEntries[m.histPos])
	m.input.CursorEnd()
}

func (m *promptModel) historyNext() {
	if m.histPos >= len(m.histEntries) {
		return
	}
	m.histPos++
	if m.histPos == len(m.histEntries) {
		m.input.SetValue(m.histPending)
	} else {
		m.input.SetValue(m.histEntries[m.histPos])
	}
	m.input.CursorEnd()
}

func (m *promptModel) resizePanel() {
	if m.width <= 0 {
		return
	}
	panelHeight := int(float64(m.height) * ui.DocPanelRatio)
	if panelHeight < ui.DocPanelMinLines {
		panelHeight = ui.DocPanelMinLines
	}
	m.docview.Width = m.width - ui.PanelBorderWidth - 2*ui.PanelPaddingH
	m.docview.Height = panelHeight

	wrap := m.docview.Width
	if wrap > 0 {
		if r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		); err == nil {
			m.renderer = r
			m.docview.SetContent(m.renderDocs(m.docText))
		}
	}
}

func (m promptModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Prompt.Render(ui.PromptText))
	b.WriteString(m.input.View())
	b.WriteByte('\n')

	if menu := m.menu.Render(); menu != "" {
		b.WriteString(menu)
		b.WriteByte('\n')
	}

	if m.settings.Bool(shell.SettingShowHelp) {
		b.WriteString(m.styles.DocPanel.Render(m.docview.View()))
		b.WriteByte('\n')
	}

	width := m.width
	if width <= 0 {
		width = ui.DefaultWidth
	}
	b.WriteString(ui.RenderToolbar(m.styles, width, ui.ToggleState{
		Fuzzy:       m.settings.Bool(shell.SettingMatchFuzzy),
		Vi:          m.settings.Bool(shell.SettingVIBindings),
		Columns:     m.settings.Bool(shell.SettingCompletionColumns),
		Help:        m.settings.Bool(shell.SettingShowHelp),
		ViIndicator: m.viMode.indicator(),
	}))

	return b.String()
}

// promptInterface adapts the bubbletea surface to the engine's Interface.
// Each ReadLine runs one program over the retained model, so buffer history
// and panel content survive across submitted lines while subprocesses get
// the terminal to themselves between reads.
type promptInterface struct {
	model    promptModel
	settings *shell.Settings

	// runProgram is a seam for tests.
	runProgram func(tea.Model) (tea.Model, error)
}

func runTeaProgram(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

func (p *promptInterface) ReadLine() (shell.Result, error) {
	p.model.resetForRead()
	out, err := p.runProgram(p.model)
	if err != nil {
		return shell.Result{}, err
	}
	p.model = out.(promptModel)
	return p.model.result, nil
}

func (p *promptInterface) ClearDocs() {
	p.model.docText = ""
	p.model.docview.SetContent("")
}

// RequestRedraw is a no-op between reads: the next ReadLine renders the
// surface from scratch anyway.
func (p *promptInterface) RequestRedraw() {}

// Close deregisters the settings listener so no callback of this surface
// outlives it.
func (p *promptInterface) Close() error {
	p.settings.SetListener(nil)
	return nil
}

// resetForRead clears per-read state: the submitted or cancelled input is
// gone, the completion menu is empty, and history navigation starts over.
func (m *promptModel) resetForRead() {
	m.result = shell.Result{}
	m.input.Reset()
	m.menu.SetItems(nil)
	m.completer.Reset()
	m.histPos = len(m.histEntries)
	m.histPending = ""
	m.idleSeq++
	if m.viEnabled {
		m.viMode = viInsert
	}
}

// historySource is the read side the prompt needs for Up/Down navigation.
type historySource interface {
	Entries() []string
}

// promptBuilder assembles a fresh surface from current configuration.
type promptBuilder struct {
	settings  *shell.Settings
	completer promptCompleter
	docs      shell.DocsProvider
	history   historySource
	logger    *zap.Logger
}

func (b *promptBuilder) Build() (shell.Interface, error) {
	styles := ui.NewStyles(ui.ResolveTheme(b.settings.String(shell.SettingTheme)))

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = ""
	ti.CharLimit = 4096
	ti.Width = ui.DefaultWidth - len(ui.PromptText)
	ti.TextStyle = styles.Input
	ti.Focus()

	vp := viewport.New(ui.DefaultWidth-ui.PanelBorderWidth, ui.DocPanelMinLines)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(ui.DefaultWidth-ui.PanelBorderWidth),
	)
	if err != nil {
		b.logger.Warn("markdown renderer unavailable, docs render plain", zap.Error(err))
		renderer = nil
	}

	viEnabled := b.settings.Bool(shell.SettingVIBindings)
	b.completer.SetMatchFuzzy(b.settings.Bool(shell.SettingMatchFuzzy))

	updater := shell.NewDocPanelUpdater(b.completer, b.docs, func() bool {
		return b.settings.Bool(shell.SettingShowHelp)
	})

	rebuild := new(bool)
	b.settings.SetListener(func(name string) {
		b.logger.Debug("setting applied, rebuild requested", zap.String("setting", name))
		*rebuild = true
	})

	mode := viInsert
	model := promptModel{
		input:            ti,
		docview:          vp,
		menu:             ui.NewMenu(styles, b.settings.Bool(shell.SettingCompletionColumns)),
		styles:           styles,
		renderer:         renderer,
		keys:             defaultKeyMap(),
		settings:         b.settings,
		completer:        b.completer,
		updater:          updater,
		logger:           b.logger,
		rebuildRequested: rebuild,
		histEntries:      b.history.Entries(),
		viEnabled:        viEnabled,
		viMode:           mode,
	}
	model.histPos = len(model.histEntries)

	return &promptInterface{
		model:      model,
		settings:   b.settings,
		runProgram: runTeaProgram,
	}, nil
}
