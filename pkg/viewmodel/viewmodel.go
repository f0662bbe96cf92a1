// Package viewmodel mirrors the note store as an ordered sequence of entries
// carrying a transient selection flag, for the list screen to render.
package viewmodel

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/notes/pkg/note"
	"tableflip.dev/notes/pkg/store"
)

// ErrPosition is returned when a position does not address an entry.
var ErrPosition = errors.New("viewmodel: position out of range")

// Store is the subset of store.Persistence the collection needs.
type Store interface {
	FetchAll(ctx context.Context) ([]*note.Note, error)
	Insert(ctx context.Context, n *note.Note) error
	Update(ctx context.Context, n *note.Note) error
	Delete(ctx context.Context, n *note.Note) error
}

// Presenter redraws the list. It is told once per completed mutation and
// never receives partial updates.
type Presenter interface {
	NotifyChanged()
}

// DisplayState selects between the empty hint and the list.
type DisplayState int

const (
	DisplayEmpty DisplayState = iota
	DisplayList
)

func (d DisplayState) String() string {
	if d == DisplayList {
		return "list"
	}
	return "empty"
}

// NoteEntry pairs a note with its selection flag.
type NoteEntry struct {
	Note     *note.Note
	Selected bool
}

// Collection is the in-memory sequence of entries. It is not safe for
// concurrent use; the screen owning it serialises every call.
type Collection struct {
	store     Store
	presenter Presenter

	entries []*NoteEntry
	display DisplayState
}

// New returns an empty collection. Call Load to populate it.
func New(s Store, p Presenter) *Collection {
	return &Collection{store: s, presenter: p}
}

// Load replaces the entries with the store contents, all unselected.
func (c *Collection) Load(ctx context.Context) error {
	notes, err := c.store.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("viewmodel: load: %w", err)
	}
	entries := make([]*NoteEntry, 0, len(notes))
	for _, n := range notes {
		if n == nil {
			continue
		}
		entries = append(entries, &NoteEntry{Note: n.Clone()})
	}
	c.entries = entries
	c.changed()
	return nil
}

// Add inserts n into the store and appends an unselected entry for it.
func (c *Collection) Add(ctx context.Context, n *note.Note) error {
	if n == nil {
		return errors.New("viewmodel: nil note")
	}
	if err := c.store.Insert(ctx, n); err != nil {
		return fmt.Errorf("viewmodel: add: %w", err)
	}
	c.entries = append(c.entries, &NoteEntry{Note: n.Clone()})
	c.changed()
	return nil
}

// ApplyUpdate persists n and copies its title, content and update time into
// the entry with the same ID. Positions may have shifted since the note was
// handed out, so entries are matched by ID only. An ID that is not in the
// collection leaves it unchanged.
func (c *Collection) ApplyUpdate(ctx context.Context, n *note.Note) error {
	if n == nil {
		return errors.New("viewmodel: nil note")
	}
	idx := c.IndexOf(n.ID)
	if err := c.store.Update(ctx, n); err != nil {
		if idx < 0 && errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("viewmodel: update: %w", err)
	}
	if idx < 0 {
		return nil
	}
	target := c.entries[idx].Note
	target.Title = n.Title
	target.Content = n.Content
	target.Updated = n.Updated
	c.changed()
	return nil
}

// RemoveAt deletes the notes at the given positions from the store and the
// collection. All positions are validated before anything is deleted and
// duplicates are ignored. Entries are removed by identity after the deletes,
// so the order positions are given in does not matter.
//
// When a store delete fails the remaining deletes are skipped, entries whose
// delete already succeeded are still removed, and the error is returned.
func (c *Collection) RemoveAt(ctx context.Context, positions []int) error {
	targets := make([]*NoteEntry, 0, len(positions))
	seen := make(map[int]struct{}, len(positions))
	for _, pos := range positions {
		if pos < 0 || pos >= len(c.entries) {
			return fmt.Errorf("%w: %d", ErrPosition, pos)
		}
		if _, dup := seen[pos]; dup {
			continue
		}
		seen[pos] = struct{}{}
		targets = append(targets, c.entries[pos])
	}
	if len(targets) == 0 {
		return nil
	}

	removed := make(map[*NoteEntry]struct{}, len(targets))
	var deleteErr error
	for _, e := range targets {
		if err := c.store.Delete(ctx, e.Note); err != nil {
			deleteErr = fmt.Errorf("viewmodel: delete %s: %w", e.Note.ID, err)
			break
		}
		removed[e] = struct{}{}
	}

	if len(removed) > 0 {
		kept := c.entries[:0:0]
		for _, e := range c.entries {
			if _, gone := removed[e]; !gone {
				kept = append(kept, e)
			}
		}
		c.entries = kept
		c.changed()
	}
	return deleteErr
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.entries)
}

// At returns a copy of the entry at pos.
func (c *Collection) At(pos int) (NoteEntry, bool) {
	if pos < 0 || pos >= len(c.entries) {
		return NoteEntry{}, false
	}
	e := c.entries[pos]
	return NoteEntry{Note: e.Note.Clone(), Selected: e.Selected}, true
}

// Entries returns copies of all entries in order.
func (c *Collection) Entries() []NoteEntry {
	out := make([]NoteEntry, len(c.entries))
	for i, e := range c.entries {
		out[i] = NoteEntry{Note: e.Note.Clone(), Selected: e.Selected}
	}
	return out
}

// IndexOf returns the position of the note with the given ID, or -1.
func (c *Collection) IndexOf(id string) int {
	for i, e := range c.entries {
		if e.Note.ID == id {
			return i
		}
	}
	return -1
}

// Display reports whether the empty hint or the list should be shown.
func (c *Collection) Display() DisplayState {
	return c.display
}

// SetSelected sets the selection flag of the entry at pos.
func (c *Collection) SetSelected(pos int, selected bool) {
	if pos < 0 || pos >= len(c.entries) {
		return
	}
	if c.entries[pos].Selected == selected {
		return
	}
	c.entries[pos].Selected = selected
	c.notify()
}

// ClearSelection unselects every entry.
func (c *Collection) ClearSelection() {
	for _, e := range c.entries {
		e.Selected = false
	}
	c.notify()
}

func (c *Collection) changed() {
	if len(c.entries) == 0 {
		c.display = DisplayEmpty
	} else {
		c.display = DisplayList
	}
	c.notify()
}

func (c *Collection) notify() {
	if c.presenter != nil {
		c.presenter.NotifyChanged()
	}
}
