package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/notes/pkg/note"
)

type editorField int

const (
	fieldTitle editorField = iota
	fieldContent
)

// editor is the create/edit form. original is nil when creating.
type editor struct {
	title    textinput.Model
	content  textarea.Model
	focus    editorField
	original *note.Note
}

func newEditor(n *note.Note, width, height int) *editor {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = 256
	ti.Prompt = ""

	ta := textarea.New()
	ta.Placeholder = "Write something…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0

	e := &editor{title: ti, content: ta}
	if n != nil {
		e.original = n.Clone()
		e.title.SetValue(n.Title)
		e.title.CursorEnd()
		e.content.SetValue(n.Content)
	}
	e.setSize(width, height)
	e.focusField(fieldTitle)
	return e
}

func (e *editor) creating() bool { return e.original == nil }

func (e *editor) setSize(width, height int) {
	width = max(width-4, 20)
	e.title.Width = width
	e.content.SetWidth(width)
	// header, title, label and footer lines
	e.content.SetHeight(max(height-8, 3))
}

func (e *editor) focusField(f editorField) tea.Cmd {
	e.focus = f
	if f == fieldTitle {
		e.content.Blur()
		return e.title.Focus()
	}
	e.title.Blur()
	return e.content.Focus()
}

func (e *editor) toggleField() tea.Cmd {
	if e.focus == fieldTitle {
		return e.focusField(fieldContent)
	}
	return e.focusField(fieldTitle)
}

func (e *editor) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if e.focus == fieldTitle {
		e.title, cmd = e.title.Update(msg)
	} else {
		e.content, cmd = e.content.Update(msg)
	}
	return cmd
}

// result builds the note to hand back. It returns nil, nil when an edit
// changed nothing.
func (e *editor) result(now time.Time) (*note.Note, error) {
	title := strings.TrimSpace(e.title.Value())
	content := strings.TrimRight(e.content.Value(), " \n")
	if e.creating() {
		n := note.New(title, content)
		n.Created = note.Timestamp{Time: now}
		n.Updated = note.Timestamp{Time: now}
		return n, n.Validate()
	}
	if title == e.original.Title && content == e.original.Content {
		return nil, nil
	}
	n := e.original.Clone()
	n.Title = title
	n.Content = content
	if err := n.Validate(); err != nil {
		return nil, err
	}
	n.Touch(now)
	return n, nil
}

func (e *editor) view(th theme) string {
	heading := "New note"
	if !e.creating() {
		heading = "Edit note"
	}
	var b strings.Builder
	b.WriteString(th.Header.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(th.Label.Render("Title"))
	b.WriteString("\n")
	b.WriteString(e.title.View())
	b.WriteString("\n\n")
	b.WriteString(th.Label.Render("Content"))
	b.WriteString("\n")
	b.WriteString(e.content.View())
	return b.String()
}
