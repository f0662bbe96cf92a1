package tui

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

//go:embed about.md
var aboutMarkdown string

// about renders the about panel inside a bordered viewport.
type about struct {
	viewport viewport.Model
	version  string
	style    string
	width    int
}

func newAbout(version, style string, width, height int) *about {
	a := &about{version: version, style: style, viewport: viewport.New(1, 1)}
	a.setSize(width, height)
	return a
}

func (a *about) setSize(width, height int) {
	a.viewport.Width = max(width-4, 20)
	a.viewport.Height = max(height-4, 5)
	if a.width == a.viewport.Width {
		return
	}
	a.width = a.viewport.Width
	src := strings.TrimSpace(aboutMarkdown)
	if a.version != "" {
		src += "\n\nVersion " + a.version + "."
	}
	content, err := renderMarkdown(src, a.style, a.width)
	if err != nil {
		content = "about unavailable: " + err.Error()
	}
	a.viewport.SetContent(content)
	a.viewport.GotoTop()
}

func (a *about) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return cmd
}

func (a *about) view(th theme) string {
	return th.Panel.Render(a.viewport.View())
}
