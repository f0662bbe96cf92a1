package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/notes/pkg/note"
	"tableflip.dev/notes/pkg/store"
)

type memoryPersistence struct {
	mu    sync.Mutex
	notes map[string]*note.Note
}

func newMemoryPersistence(notes ...*note.Note) *memoryPersistence {
	mp := &memoryPersistence{notes: make(map[string]*note.Note)}
	for _, n := range notes {
		mp.notes[n.ID] = n.Clone()
	}
	return mp
}

func (m *memoryPersistence) FetchAll(_ context.Context) ([]*note.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*note.Note, 0, len(m.notes))
	for _, n := range m.notes {
		out = append(out, n.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryPersistence) Get(_ context.Context, id string) (*note.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return n.Clone(), nil
}

func (m *memoryPersistence) Insert(_ context.Context, n *note.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[n.ID]; ok {
		return store.ErrExists
	}
	m.notes[n.ID] = n.Clone()
	return nil
}

func (m *memoryPersistence) Update(_ context.Context, n *note.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[n.ID]; !ok {
		return store.ErrNotFound
	}
	m.notes[n.ID] = n.Clone()
	return nil
}

func (m *memoryPersistence) Delete(_ context.Context, n *note.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[n.ID]; !ok {
		return store.ErrNotFound
	}
	delete(m.notes, n.ID)
	return nil
}

func (m *memoryPersistence) Watch(_ context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	close(ch)
	return ch, nil
}

func (m *memoryPersistence) Close() error { return nil }

func TestServiceRequiresPersistence(t *testing.T) {
	svc := &Service{}
	if _, err := svc.List(context.Background()); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("List err = %v, want ErrNoPersistence", err)
	}
	if _, err := svc.Delete(context.Background(), "x"); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("Delete err = %v, want ErrNoPersistence", err)
	}
}

func TestAddValidates(t *testing.T) {
	mp := newMemoryPersistence()
	svc := &Service{Persistence: mp}
	ctx := context.Background()

	if _, err := svc.Add(ctx, " ", ""); !errors.Is(err, note.ErrEmpty) {
		t.Fatalf("Add empty err = %v, want ErrEmpty", err)
	}
	n, err := svc.Add(ctx, "groceries", "milk")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if n.ID == "" || n.Created.IsZero() {
		t.Fatalf("Add returned %+v", n)
	}
	if len(mp.notes) != 1 {
		t.Fatalf("stored %d notes, want 1", len(mp.notes))
	}
}

func TestGetResolvesPrefix(t *testing.T) {
	svc := &Service{Persistence: newMemoryPersistence(
		&note.Note{ID: "abc123", Title: "one"},
		&note.Note{ID: "abd456", Title: "two"},
	)}
	ctx := context.Background()

	n, err := svc.Get(ctx, "abc")
	if err != nil || n.Title != "one" {
		t.Fatalf("Get(abc) = %v, %v", n, err)
	}
	if _, err := svc.Get(ctx, "ab"); !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("Get(ab) err = %v, want ErrAmbiguous", err)
	}
	if _, err := svc.Get(ctx, "zz"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Get(zz) err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Get(ctx, ""); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Get(\"\") err = %v, want ErrNotFound", err)
	}
}

func TestEditUpdatesOnlyGivenFields(t *testing.T) {
	mp := newMemoryPersistence(&note.Note{ID: "n1", Title: "old", Content: "keep"})
	svc := &Service{Persistence: mp}
	ctx := context.Background()

	title := "new"
	n, err := svc.Edit(ctx, "n1", &title, nil)
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if n.Title != "new" || n.Content != "keep" {
		t.Fatalf("Edit = %+v", n)
	}
	if n.Updated.IsZero() {
		t.Fatalf("Edit did not touch the note")
	}
	if mp.notes["n1"].Title != "new" {
		t.Fatalf("store not updated")
	}

	blank := ""
	if _, err := svc.Edit(ctx, "n1", &blank, &blank); !errors.Is(err, note.ErrEmpty) {
		t.Fatalf("Edit blank err = %v, want ErrEmpty", err)
	}
	if mp.notes["n1"].Title != "new" {
		t.Fatalf("rejected edit reached the store")
	}
}

func TestDeleteResolvesAllFirst(t *testing.T) {
	mp := newMemoryPersistence(
		&note.Note{ID: "n1", Title: "a"},
		&note.Note{ID: "n2", Title: "b"},
	)
	svc := &Service{Persistence: mp}
	ctx := context.Background()

	if _, err := svc.Delete(ctx, "n1", "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Delete err = %v, want ErrNotFound", err)
	}
	if len(mp.notes) != 2 {
		t.Fatalf("partial delete happened: %d notes left", len(mp.notes))
	}
	deleted, err := svc.Delete(ctx, "n1", "n1", "n2")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(deleted) != 2 || len(mp.notes) != 0 {
		t.Fatalf("deleted %d, left %d", len(deleted), len(mp.notes))
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789"); got != "01234567" {
		t.Fatalf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Fatalf("ShortID = %q", got)
	}
}

func TestUpdatedSince(t *testing.T) {
	base := time.Date(2025, time.November, 10, 12, 0, 0, 0, time.UTC)
	at := func(h int) note.Timestamp { return note.Timestamp{Time: base.Add(time.Duration(h) * time.Hour)} }
	svc := &Service{Persistence: newMemoryPersistence(
		&note.Note{ID: "old", Title: "old", Created: at(-48), Updated: at(-48)},
		&note.Note{ID: "edited", Title: "edited", Created: at(-48), Updated: at(-1)},
		&note.Note{ID: "fresh", Title: "fresh", Created: at(-2)},
	)}
	got, err := svc.UpdatedSince(context.Background(), base.Add(-3*time.Hour))
	if err != nil {
		t.Fatalf("UpdatedSince: %v", err)
	}
	var ids []string
	for _, n := range got {
		ids = append(ids, n.ID)
	}
	sort.Strings(ids)
	if strings.Join(ids, ",") != "edited,fresh" {
		t.Fatalf("ids = %v, want edited,fresh", ids)
	}
}

func TestResolveDedupesPrefixes(t *testing.T) {
	svc := &Service{Persistence: newMemoryPersistence(
		&note.Note{ID: "abc123", Title: "one"},
		&note.Note{ID: "xyz789", Title: "two"},
	)}
	got, err := svc.Resolve(context.Background(), "abc", "abc123", "xyz")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 2 || got[0].ID != "abc123" || got[1].ID != "xyz789" {
		t.Fatalf("Resolve = %v", got)
	}
}
