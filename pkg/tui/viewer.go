package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"tableflip.dev/notes/pkg/note"
)

// viewer shows one note rendered as markdown.
type viewer struct {
	note     note.Note
	style    string
	viewport viewport.Model
	width    int
	err      error
}

func newViewer(n note.Note, style string, width, height int) *viewer {
	v := &viewer{note: n, style: style}
	v.viewport = viewport.New(max(width, 1), max(height, 1))
	v.setSize(width, height)
	return v
}

func (v *viewer) setSize(width, height int) {
	v.viewport.Width = max(width, 20)
	// header and footer lines
	v.viewport.Height = max(height-4, 3)
	if v.width != v.viewport.Width {
		v.width = v.viewport.Width
		v.render()
	}
}

func (v *viewer) setNote(n note.Note) {
	v.note = n
	v.render()
}

func (v *viewer) render() {
	body, err := renderMarkdown(v.note.Content, v.style, v.width)
	v.err = err
	if err != nil {
		body = v.note.Content
	}
	v.viewport.SetContent(body)
	v.viewport.GotoTop()
}

func (v *viewer) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

func (v *viewer) view(th theme) string {
	title := v.note.Summary()
	if title == "" {
		title = "Untitled"
	}
	var b strings.Builder
	b.WriteString(th.Header.Render(title))
	b.WriteString("  ")
	b.WriteString(th.Meta.Render(v.note.Updated.Relative(time.Now())))
	b.WriteString("\n")
	b.WriteString(v.viewport.View())
	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(th.Error.Render("markdown unavailable: " + v.err.Error()))
	}
	return b.String()
}

// renderMarkdown renders src with the named glamour style. "auto" picks a
// style from the terminal background.
func renderMarkdown(src, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(max(width-2, 10))}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	out, err := r.Render(src)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
