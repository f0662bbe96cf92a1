// Package selection implements the list screen's contextual selection mode:
// a long press starts selecting, taps toggle entries, and a delete action
// removes the selected notes after confirmation.
package selection

import (
	"context"
	"slices"
	"strconv"
)

// Mode is the tracker state.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSelecting
)

func (m Mode) String() string {
	if m == ModeSelecting {
		return "selecting"
	}
	return "normal"
}

// Selectable holds the per-entry selection flags the tracker drives.
type Selectable interface {
	Len() int
	SetSelected(pos int, selected bool)
	ClearSelection()
}

// Remover deletes the entries at the given positions.
type Remover interface {
	RemoveAt(ctx context.Context, positions []int) error
}

// Tracker owns the selection set. Positions are kept in the order they were
// selected and appear at most once.
type Tracker struct {
	items      Selectable
	positions  []int
	confirming bool
}

// New returns a tracker in normal mode.
func New(items Selectable) *Tracker {
	return &Tracker{items: items}
}

// Mode reports whether the tracker is selecting.
func (t *Tracker) Mode() Mode {
	if len(t.positions) > 0 {
		return ModeSelecting
	}
	return ModeNormal
}

// Selecting is shorthand for Mode() == ModeSelecting.
func (t *Tracker) Selecting() bool {
	return t.Mode() == ModeSelecting
}

// Confirming reports whether a delete is waiting for confirmation.
func (t *Tracker) Confirming() bool {
	return t.confirming
}

// Count is the number of selected positions.
func (t *Tracker) Count() int {
	return len(t.positions)
}

// Title is the counter shown in place of the screen title while selecting.
func (t *Tracker) Title() string {
	return strconv.Itoa(len(t.positions))
}

// Positions returns the selected positions in selection order.
func (t *Tracker) Positions() []int {
	return slices.Clone(t.positions)
}

// Contains reports whether pos is selected.
func (t *Tracker) Contains(pos int) bool {
	return slices.Contains(t.positions, pos)
}

// Tap handles a tap on pos. In normal mode it changes nothing and returns
// true so the caller can open the note. While selecting it toggles pos, and
// deselecting the last position returns to normal mode.
func (t *Tracker) Tap(pos int) (navigate bool) {
	if !t.valid(pos) {
		return false
	}
	if !t.Selecting() {
		return true
	}
	if t.confirming {
		return false
	}
	if i := slices.Index(t.positions, pos); i >= 0 {
		t.positions = slices.Delete(t.positions, i, i+1)
		if len(t.positions) == 0 {
			t.Exit()
			return false
		}
		t.items.SetSelected(pos, false)
		return false
	}
	t.positions = append(t.positions, pos)
	t.items.SetSelected(pos, true)
	return false
}

// LongPress starts selecting with pos as the first selected entry. It is
// ignored while already selecting and reports whether it took effect.
func (t *Tracker) LongPress(pos int) bool {
	if t.Selecting() || !t.valid(pos) {
		return false
	}
	t.items.SetSelected(pos, true)
	t.positions = append(t.positions, pos)
	return true
}

// Exit clears every selection flag and the selection set.
func (t *Tracker) Exit() {
	t.positions = nil
	t.confirming = false
	t.items.ClearSelection()
}

// RequestDelete starts the delete action. With nothing selected it returns
// to normal mode and asks for no confirmation; otherwise it waits for
// ConfirmDelete or CancelDelete and returns the number of notes concerned.
func (t *Tracker) RequestDelete() (count int, confirm bool) {
	if len(t.positions) == 0 {
		t.Exit()
		return 0, false
	}
	t.confirming = true
	return len(t.positions), true
}

// ConfirmDelete removes the selected positions and returns to normal mode.
// The mode is reset even when r fails, since the positions no longer
// describe the entries reliably after a partial removal.
func (t *Tracker) ConfirmDelete(ctx context.Context, r Remover) error {
	positions := t.Positions()
	t.positions = nil
	t.confirming = false
	var err error
	if len(positions) > 0 {
		err = r.RemoveAt(ctx, positions)
	}
	t.items.ClearSelection()
	return err
}

// CancelDelete dismisses a pending confirmation and keeps the selection.
func (t *Tracker) CancelDelete() {
	t.confirming = false
}

func (t *Tracker) valid(pos int) bool {
	return pos >= 0 && pos < t.items.Len()
}
