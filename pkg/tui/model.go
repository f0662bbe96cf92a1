// Package tui is the terminal front end of the notes list screen.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/notes/pkg/note"
	"tableflip.dev/notes/pkg/screen"
	"tableflip.dev/notes/pkg/store"
	"tableflip.dev/notes/pkg/viewmodel"
)

type page int

const (
	pageList page = iota
	pageEditor
	pageNote
	pageAbout
)

// Options tune the model. The zero value is usable.
type Options struct {
	Logger  *slog.Logger
	Style   string
	Version string
}

// Model is the Bubble Tea model of the notes screen. It is the presenter and
// the navigator of the screen controller, so it must be used as a pointer.
type Model struct {
	ctx   context.Context
	store store.Persistence
	ctrl  *screen.Controller
	log   *slog.Logger

	page       page
	editor     *editor
	editorFrom page
	viewer     *viewer
	about      *about
	prompt     string
	pending    []tea.Cmd

	cursor int
	offset int
	// chromeHidden hides the header and add hint after scrolling down.
	chromeHidden bool

	status    string
	statusErr bool
	redraws   int

	width  int
	height int

	keys       listKeyMap
	editorKeys editorKeyMap
	viewerKeys viewerKeyMap
	help       help.Model
	theme      theme
	style      string
	version    string

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	copyText func(string) error
	now      func() time.Time
}

var (
	_ tea.Model           = (*Model)(nil)
	_ viewmodel.Presenter = (*Model)(nil)
	_ screen.Navigator    = (*Model)(nil)
)

// New builds the model on top of p.
func New(ctx context.Context, p store.Persistence, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	style := opts.Style
	if style == "" {
		style = "dark"
	}
	m := &Model{
		ctx:        ctx,
		store:      p,
		log:        logger,
		keys:       defaultListKeys(),
		editorKeys: defaultEditorKeys(),
		viewerKeys: defaultViewerKeys(),
		help:       help.New(),
		theme:      defaultTheme(),
		style:      style,
		version:    opts.Version,
		copyText:   clipboard.WriteAll,
		now:        time.Now,
	}
	m.ctrl = screen.New(p, m, m, logger)
	return m
}

// messages
type loadMsg struct{}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

// Init loads the notes and starts watching the store.
func (m *Model) Init() tea.Cmd {
	load := func() tea.Msg { return loadMsg{} }
	return tea.Batch(load, startWatchCmd(m.ctx, m.store))
}

func startWatchCmd(parent context.Context, p store.Persistence) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := p.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// NotifyChanged is called by the view-model after every completed change.
func (m *Model) NotifyChanged() {
	m.redraws++
	m.clampCursor()
}

// CreateNote opens an empty editor.
func (m *Model) CreateNote() {
	m.openEditor(nil, pageList)
}

// OpenNote shows n.
func (m *Model) OpenNote(n note.Note) {
	m.viewer = newViewer(n, m.style, m.width, m.height)
	m.page = pageNote
}

// ShowAbout shows the about panel.
func (m *Model) ShowAbout() {
	m.about = newAbout(m.version, m.style, m.width, m.height)
	m.page = pageAbout
}

func (m *Model) openEditor(n *note.Note, from page) {
	m.editor = newEditor(n, m.width, m.height)
	m.editorFrom = from
	m.page = pageEditor
	m.pending = append(m.pending, m.editor.focusField(fieldTitle))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	if err == nil {
		return
	}
	m.status = "ERR: " + err.Error()
	m.statusErr = true
}

// Update handles messages and keybindings.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.applySizes()
	case loadMsg:
		m.setError(m.ctrl.Start(m.ctx))
	case watchStartedMsg:
		if msg.err != nil {
			m.log.Warn("tui: watch unavailable", "error", msg.err)
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		m.handleWatchEvent(msg.event)
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.watchCh = nil
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	default:
		// cursor blink and friends
		if m.page == pageEditor && m.editor != nil {
			cmds = append(cmds, m.editor.update(msg))
		}
	}

	cmds = append(cmds, m.pending...)
	m.pending = nil
	return m, tea.Batch(cmds...)
}

func (m *Model) handleWatchEvent(ev store.Event) {
	m.log.Debug("tui: store changed", "type", ev.Type, "id", ev.ID)
	if err := m.ctrl.StoreChanged(m.ctx); err != nil {
		m.setError(err)
		return
	}
	if m.page == pageNote && m.viewer != nil && (ev.Type == store.EventInvalidated || ev.ID == m.viewer.note.ID) {
		if idx := m.ctrl.Notes().IndexOf(m.viewer.note.ID); idx >= 0 {
			if e, ok := m.ctrl.Notes().At(idx); ok {
				m.viewer.setNote(*e.Note)
			}
		}
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.stopWatch()
		return tea.Quit
	}
	switch m.page {
	case pageEditor:
		return m.handleEditorKey(msg)
	case pageNote:
		return m.handleViewerKey(msg)
	case pageAbout:
		if key.Matches(msg, m.keys.Exit, m.keys.Quit, m.keys.About) {
			m.page = pageList
			return nil
		}
		return m.about.update(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	sel := m.ctrl.Selection()
	if sel.Confirming() {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			count := sel.Count()
			if err := m.ctrl.ConfirmDelete(m.ctx); err != nil {
				m.setError(err)
			} else if count == 1 {
				m.setStatus("Deleted 1 note")
			} else {
				m.setStatus(fmt.Sprintf("Deleted %d notes", count))
			}
			m.prompt = ""
		case key.Matches(msg, m.keys.Cancel):
			m.ctrl.CancelDelete()
			m.prompt = ""
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopWatch()
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(m.cursor - 1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.cursor + 1)
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(0)
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(m.ctrl.Notes().Len() - 1)
	case key.Matches(msg, m.keys.Open):
		m.ctrl.Tap(m.cursor)
	case key.Matches(msg, m.keys.Select):
		if sel.Selecting() {
			m.ctrl.Tap(m.cursor)
		} else {
			m.ctrl.LongPress(m.cursor)
		}
	case key.Matches(msg, m.keys.Add):
		m.ctrl.AddPressed()
	case key.Matches(msg, m.keys.Delete):
		if !sel.Selecting() {
			return nil
		}
		if prompt, confirm := m.ctrl.DeletePressed(); confirm {
			m.prompt = prompt
		}
	case key.Matches(msg, m.keys.Exit):
		m.ctrl.ExitSelection()
	case key.Matches(msg, m.keys.About):
		m.ctrl.AboutPressed()
	case key.Matches(msg, m.keys.Reload):
		if err := m.ctrl.Reload(m.ctx); err != nil {
			m.setError(err)
		} else if !sel.Selecting() {
			m.setStatus("Reloaded")
		}
	}
	return nil
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.editorKeys.Save):
		n, err := m.editor.result(m.now())
		if err != nil {
			if errors.Is(err, note.ErrEmpty) {
				m.setStatus("A note needs a title or some content")
				return nil
			}
			m.setError(err)
			return nil
		}
		m.finishEditor(n)
	case key.Matches(msg, m.editorKeys.Cancel):
		m.finishEditor(nil)
		m.setStatus("Discarded")
	case key.Matches(msg, m.editorKeys.Switch):
		return m.editor.toggleField()
	default:
		return m.editor.update(msg)
	}
	return nil
}

// finishEditor hands the editor result to the controller and returns to the
// screen the editor was opened from. n is nil when nothing is to be saved.
func (m *Model) finishEditor(n *note.Note) {
	creating := m.editor.creating()
	var err error
	if creating {
		err = m.ctrl.CreateResult(m.ctx, n)
	} else {
		err = m.ctrl.EditResult(m.ctx, n)
	}
	m.page = m.editorFrom
	m.editor = nil
	if err != nil {
		m.setError(err)
		return
	}
	switch {
	case n == nil:
	case creating:
		m.moveCursor(m.ctrl.Notes().Len() - 1)
		m.setStatus("Saved")
	default:
		if m.viewer != nil {
			m.viewer.setNote(*n)
		}
		m.setStatus("Saved")
	}
}

func (m *Model) handleViewerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.viewerKeys.Back):
		m.page = pageList
		m.viewer = nil
	case key.Matches(msg, m.viewerKeys.Edit):
		n := m.viewer.note
		m.openEditor(&n, pageNote)
	case key.Matches(msg, m.viewerKeys.Copy):
		if err := m.copyText(m.viewer.note.Content); err != nil {
			m.setError(err)
		} else {
			m.setStatus("Copied to clipboard")
		}
	default:
		return m.viewer.update(msg)
	}
	return nil
}

func (m *Model) moveCursor(to int) {
	n := m.ctrl.Notes().Len()
	if n == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	to = max(0, min(to, n-1))
	if to > m.cursor {
		m.chromeHidden = true
	} else if to < m.cursor {
		m.chromeHidden = false
	}
	m.cursor = to
	m.ensureVisible()
}

func (m *Model) clampCursor() {
	n := m.ctrl.Notes().Len()
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	if n == 0 {
		m.chromeHidden = false
	}
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	rows := m.listRows()
	if rows <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// listRows is how many entries fit on screen, or 0 before the first resize.
func (m *Model) listRows() int {
	if m.height == 0 {
		return 0
	}
	// header, add hint, status and help lines
	return max(m.height-6, 1)
}

// applySizes propagates the terminal size to the open sub views.
func (m *Model) applySizes() {
	if m.editor != nil {
		m.editor.setSize(m.width, m.height)
	}
	if m.viewer != nil {
		m.viewer.setSize(m.width, m.height)
	}
	if m.about != nil {
		m.about.setSize(m.width, m.height)
	}
	m.ensureVisible()
}

// View renders the active screen with the status and help footer.
func (m *Model) View() string {
	var body string
	var bindings []key.Binding
	switch m.page {
	case pageEditor:
		body = m.editor.view(m.theme)
		bindings = m.editorKeys.help()
	case pageNote:
		body = m.viewer.view(m.theme)
		bindings = m.viewerKeys.help()
	case pageAbout:
		body = m.about.view(m.theme)
		bindings = []key.Binding{m.keys.Exit}
	default:
		body = m.listView()
		switch sel := m.ctrl.Selection(); {
		case sel.Confirming():
			bindings = m.keys.confirmHelp()
		case sel.Selecting():
			bindings = m.keys.selectingHelp()
		default:
			bindings = m.keys.normalHelp()
		}
	}

	status := m.theme.Status.Render(m.status)
	if m.statusErr {
		status = m.theme.Error.Render(m.status)
	}
	return body + "\n" + status + "\n" + m.help.ShortHelpView(bindings)
}

func (m *Model) listView() string {
	notes := m.ctrl.Notes()
	sel := m.ctrl.Selection()
	var b strings.Builder

	switch {
	case sel.Selecting():
		b.WriteString(m.theme.Selecting.Render(m.ctrl.Title() + " selected"))
		b.WriteString("\n")
	case !m.chromeHidden:
		b.WriteString(m.theme.Header.Render("Notes"))
		b.WriteString(m.theme.Meta.Render(fmt.Sprintf("%d", notes.Len())))
		b.WriteString("\n")
	}

	if notes.Display() == viewmodel.DisplayEmpty {
		b.WriteString(m.theme.Empty.Render("No notes yet. Press n to write one."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderRows(notes.Entries(), sel.Selecting()))
	}

	if sel.Confirming() {
		b.WriteString("\n")
		b.WriteString(m.theme.Modal.Render(
			m.theme.ModalTitle.Render(m.prompt) + "\n\n" +
				m.theme.Meta.Render("y delete · n keep")))
		b.WriteString("\n")
	}

	if !m.chromeHidden && !sel.Selecting() {
		b.WriteString(m.theme.AddHint.Render("+ n new note"))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderRows(entries []viewmodel.NoteEntry, selecting bool) string {
	start, end := 0, len(entries)
	if rows := m.listRows(); rows > 0 {
		start = min(m.offset, len(entries))
		end = min(start+rows, len(entries))
	}
	now := m.now()
	var b strings.Builder
	for i := start; i < end; i++ {
		e := entries[i]
		prefix := "  "
		if i == m.cursor {
			prefix = "› "
		}
		if selecting {
			if e.Selected {
				prefix += "[x] "
			} else {
				prefix += "[ ] "
			}
		}
		meta := e.Note.Updated.Relative(now)
		if meta == "" {
			meta = e.Note.Created.Relative(now)
		}
		summary := e.Note.Summary()
		if summary == "" {
			summary = "Untitled"
		}
		if m.width > 0 {
			room := m.width - lipgloss.Width(prefix) - lipgloss.Width(meta) - 4
			summary = truncate.StringWithTail(summary, uint(max(room, 1)), "…")
		}
		line := prefix + summary + "  " + m.theme.Meta.Render(meta)
		style := m.theme.Row
		if i == m.cursor {
			style = m.theme.Cursor
		}
		if e.Selected {
			style = style.Inherit(m.theme.Selected)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// Run starts the full screen program and blocks until the user quits.
func Run(ctx context.Context, p store.Persistence, opts Options) error {
	m := New(ctx, p, opts)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := prog.Run()
	m.stopWatch()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
