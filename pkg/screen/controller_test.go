package screen

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"tableflip.dev/notes/pkg/note"
	"tableflip.dev/notes/pkg/selection"
	"tableflip.dev/notes/pkg/store"
	"tableflip.dev/notes/pkg/viewmodel"
)

type memoryStore struct {
	notes     []*note.Note
	fetches   int
	deleteErr error
}

func newMemoryStore(n int) *memoryStore {
	m := &memoryStore{}
	for i := 0; i < n; i++ {
		m.notes = append(m.notes, &note.Note{ID: fmt.Sprintf("id-%d", i), Title: fmt.Sprintf("note %d", i)})
	}
	return m
}

func (m *memoryStore) FetchAll(_ context.Context) ([]*note.Note, error) {
	m.fetches++
	out := make([]*note.Note, len(m.notes))
	for i, n := range m.notes {
		out[i] = n.Clone()
	}
	return out, nil
}

func (m *memoryStore) Insert(_ context.Context, n *note.Note) error {
	if n.ID == "" {
		n.ID = note.NewID()
	}
	m.notes = append(m.notes, n.Clone())
	return nil
}

func (m *memoryStore) Update(_ context.Context, n *note.Note) error {
	for i, existing := range m.notes {
		if existing.ID == n.ID {
			m.notes[i] = n.Clone()
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memoryStore) Delete(_ context.Context, n *note.Note) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, existing := range m.notes {
		if existing.ID == n.ID {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type recorder struct {
	changed int
	created int
	opened  []note.Note
	about   int
}

func (r *recorder) NotifyChanged() { r.changed++ }
func (r *recorder) CreateNote()    { r.created++ }
func (r *recorder) OpenNote(n note.Note) {
	r.opened = append(r.opened, n)
}
func (r *recorder) ShowAbout() { r.about++ }

func started(t *testing.T, n int) (*Controller, *memoryStore, *recorder) {
	t.Helper()
	s := newMemoryStore(n)
	r := &recorder{}
	c := New(s, r, r, nil)
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return c, s, r
}

func TestStartLoads(t *testing.T) {
	c, _, r := started(t, 3)
	if got := c.Notes().Len(); got != 3 {
		t.Fatalf("Len = %d, want 3", got)
	}
	if r.changed != 1 {
		t.Fatalf("changed = %d, want 1", r.changed)
	}
	if c.Title() != "" {
		t.Fatalf("Title = %q, want empty in normal mode", c.Title())
	}
}

func TestTapOpensInNormalMode(t *testing.T) {
	c, _, r := started(t, 3)
	c.Tap(1)
	if len(r.opened) != 1 || r.opened[0].ID != "id-1" {
		t.Fatalf("opened = %+v, want id-1", r.opened)
	}
	r.opened[0].Title = "mutated"
	if e, _ := c.Notes().At(1); e.Note.Title != "note 1" {
		t.Fatalf("navigator copy aliases the entry")
	}
	c.Tap(7)
	if len(r.opened) != 1 {
		t.Fatalf("out of range tap opened a note")
	}
}

func TestSelectionTitleAndToggle(t *testing.T) {
	c, _, r := started(t, 4)
	c.LongPress(0)
	c.Tap(2)
	if c.Title() != "2" {
		t.Fatalf("Title = %q, want 2", c.Title())
	}
	if len(r.opened) != 0 {
		t.Fatalf("tap while selecting opened a note")
	}
	c.Tap(0)
	c.Tap(2)
	if c.Selection().Mode() != selection.ModeNormal {
		t.Fatalf("mode = %v, want normal after deselecting everything", c.Selection().Mode())
	}
}

func TestDeleteFlow(t *testing.T) {
	c, s, _ := started(t, 5)
	c.LongPress(2)
	c.Tap(0)
	c.Tap(3)
	prompt, confirm := c.DeletePressed()
	if !confirm || prompt != "Delete 3 notes?" {
		t.Fatalf("DeletePressed = %q, %v", prompt, confirm)
	}
	if err := c.ConfirmDelete(context.Background()); err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}
	if c.Selection().Selecting() {
		t.Fatalf("still selecting after delete")
	}
	var ids []string
	for _, e := range c.Notes().Entries() {
		ids = append(ids, e.Note.ID)
		if e.Selected {
			t.Fatalf("entry %s still selected", e.Note.ID)
		}
	}
	if fmt.Sprint(ids) != "[id-1 id-4]" {
		t.Fatalf("entries = %v, want [id-1 id-4]", ids)
	}
	if len(s.notes) != 2 {
		t.Fatalf("store has %d notes, want 2", len(s.notes))
	}
}

func TestDeleteWithEmptySelectionExits(t *testing.T) {
	c, _, _ := started(t, 2)
	if _, confirm := c.DeletePressed(); confirm {
		t.Fatalf("confirmation requested with nothing selected")
	}
	if c.Selection().Selecting() {
		t.Fatalf("selecting after empty delete")
	}
}

func TestCancelDeleteKeepsSelection(t *testing.T) {
	c, s, _ := started(t, 3)
	c.LongPress(1)
	if _, confirm := c.DeletePressed(); !confirm {
		t.Fatalf("expected confirmation")
	}
	c.CancelDelete()
	if !c.Selection().Selecting() || c.Selection().Confirming() {
		t.Fatalf("mode after cancel = %v confirming=%v", c.Selection().Mode(), c.Selection().Confirming())
	}
	if len(s.notes) != 3 {
		t.Fatalf("cancel deleted notes")
	}
}

func TestConfirmDeleteFailureStillExits(t *testing.T) {
	c, s, _ := started(t, 3)
	boom := errors.New("boom")
	s.deleteErr = boom
	c.LongPress(0)
	c.DeletePressed()
	if err := c.ConfirmDelete(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("ConfirmDelete err = %v, want %v", err, boom)
	}
	if c.Selection().Selecting() {
		t.Fatalf("still selecting after failed delete")
	}
	if c.Notes().Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Notes().Len())
	}
}

func TestCreateAndEditResults(t *testing.T) {
	c, s, r := started(t, 1)
	ctx := context.Background()

	c.AddPressed()
	if r.created != 1 {
		t.Fatalf("CreateNote not called")
	}
	if err := c.CreateResult(ctx, nil); err != nil || c.Notes().Len() != 1 {
		t.Fatalf("cancelled create changed state: %v", err)
	}
	if err := c.CreateResult(ctx, note.New("fresh", "")); err != nil {
		t.Fatalf("CreateResult: %v", err)
	}
	if c.Notes().Len() != 2 || len(s.notes) != 2 {
		t.Fatalf("create not applied")
	}

	edited := s.notes[0].Clone()
	edited.Title = "renamed"
	if err := c.EditResult(ctx, edited); err != nil {
		t.Fatalf("EditResult: %v", err)
	}
	if e, _ := c.Notes().At(0); e.Note.Title != "renamed" {
		t.Fatalf("title = %q, want renamed", e.Note.Title)
	}
	if err := c.EditResult(ctx, &note.Note{ID: "gone", Title: "x"}); err != nil {
		t.Fatalf("EditResult unknown: %v", err)
	}
	if err := c.EditResult(ctx, nil); err != nil {
		t.Fatalf("EditResult nil: %v", err)
	}
}

func TestAboutPressed(t *testing.T) {
	c, _, r := started(t, 0)
	c.AboutPressed()
	if r.about != 1 {
		t.Fatalf("about = %d, want 1", r.about)
	}
	if c.Notes().Display() != viewmodel.DisplayEmpty {
		t.Fatalf("display = %v, want empty", c.Notes().Display())
	}
}

func TestStoreChangedDefersWhileSelecting(t *testing.T) {
	c, s, _ := started(t, 2)
	ctx := context.Background()

	s.notes = append(s.notes, &note.Note{ID: "external", Title: "from elsewhere"})
	c.LongPress(0)
	if err := c.StoreChanged(ctx); err != nil {
		t.Fatalf("StoreChanged: %v", err)
	}
	if c.Notes().Len() != 2 || !c.ReloadPending() {
		t.Fatalf("reload not deferred: len=%d pending=%v", c.Notes().Len(), c.ReloadPending())
	}
	c.ExitSelection()
	if c.Notes().Len() != 3 || c.ReloadPending() {
		t.Fatalf("deferred reload not applied: len=%d pending=%v", c.Notes().Len(), c.ReloadPending())
	}

	if err := c.StoreChanged(ctx); err != nil {
		t.Fatalf("StoreChanged: %v", err)
	}
	if s.fetches != 3 {
		t.Fatalf("fetches = %d, want 3", s.fetches)
	}
}

func TestDeletePrompt(t *testing.T) {
	for count, want := range map[int]string{1: "Delete 1 note?", 2: "Delete 2 notes?", 12: "Delete 12 notes?"} {
		if got := DeletePrompt(count); got != want {
			t.Errorf("DeletePrompt(%d) = %q, want %q", count, got, want)
		}
	}
}
