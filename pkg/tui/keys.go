package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type listKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Open    key.Binding
	Select  key.Binding
	Add     key.Binding
	Delete  key.Binding
	Exit    key.Binding
	About   key.Binding
	Reload  key.Binding
	Quit    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultListKeys() listKeyMap {
	return listKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:  key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Select:  key.NewBinding(key.WithKeys(" ", "space", "v"), key.WithHelp("space", "select")),
		Add:     key.NewBinding(key.WithKeys("n", "a"), key.WithHelp("n", "new note")),
		Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Exit:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
		About:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "about")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "delete")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "keep")),
	}
}

// normalHelp and selectingHelp feed the footer help line.
func (k listKeyMap) normalHelp() []key.Binding {
	return []key.Binding{k.Open, k.Select, k.Add, k.About, k.Quit}
}

func (k listKeyMap) selectingHelp() []key.Binding {
	return []key.Binding{k.Select, k.Delete, k.Exit}
}

func (k listKeyMap) confirmHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

type editorKeyMap struct {
	Save   key.Binding
	Cancel key.Binding
	Switch key.Binding
}

func defaultEditorKeys() editorKeyMap {
	return editorKeyMap{
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Switch: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch field")),
	}
}

func (k editorKeyMap) help() []key.Binding {
	return []key.Binding{k.Save, k.Switch, k.Cancel}
}

type viewerKeyMap struct {
	Edit key.Binding
	Copy key.Binding
	Back key.Binding
}

func defaultViewerKeys() viewerKeyMap {
	return viewerKeyMap{
		Edit: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Copy: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Back: key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "back")),
	}
}

func (k viewerKeyMap) help() []key.Binding {
	return []key.Binding{k.Edit, k.Copy, k.Back}
}

// Legend is one row of the key reference.
type Legend struct {
	Screen string
	Keys   string
	Action string
}

// KeyLegend lists the bindings of every screen in display order.
func KeyLegend() []Legend {
	l, e, v := defaultListKeys(), defaultEditorKeys(), defaultViewerKeys()
	groups := []struct {
		screen   string
		bindings []key.Binding
	}{
		{"list", []key.Binding{l.Up, l.Down, l.Top, l.Bottom, l.Open, l.Select, l.Add, l.About, l.Reload, l.Quit}},
		{"selecting", []key.Binding{l.Select, l.Delete, l.Exit}},
		{"confirm", l.confirmHelp()},
		{"note", v.help()},
		{"editor", e.help()},
	}
	var out []Legend
	for _, g := range groups {
		for _, b := range g.bindings {
			out = append(out, Legend{Screen: g.screen, Keys: strings.Join(b.Keys(), "/"), Action: b.Help().Desc})
		}
	}
	return out
}
