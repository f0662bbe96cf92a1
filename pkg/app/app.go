package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/notes/pkg/note"
	"tableflip.dev/notes/pkg/store"
)

// ShortIDLen is how many ID characters the CLI prints and accepts as a
// prefix.
const ShortIDLen = 8

var (
	ErrNoPersistence = errors.New("app: no persistence configured")
	ErrAmbiguous     = errors.New("app: id prefix matches more than one note")
)

// Service provides note operations shared by the CLI verbs. The list screen
// talks to the store through its own view-model instead.
type Service struct {
	Persistence store.Persistence
}

// List returns every note, oldest first.
func (s *Service) List(ctx context.Context) ([]*note.Note, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.FetchAll(ctx)
}

// UpdatedSince returns the notes changed at or after t, oldest first.
func (s *Service) UpdatedSince(ctx context.Context, t time.Time) ([]*note.Note, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*note.Note, 0, len(all))
	for _, n := range all {
		last := n.Updated.Time
		if last.IsZero() {
			last = n.Created.Time
		}
		if !last.Before(t) {
			out = append(out, n)
		}
	}
	return out, nil
}

// Get returns the note whose ID equals id or, failing that, the single note
// whose ID starts with it.
func (s *Service) Get(ctx context.Context, id string) (*note.Note, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, store.ErrNotFound
	}
	n, err := s.Persistence.Get(ctx, id)
	if err == nil {
		return n, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	all, err := s.Persistence.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	var match *note.Note
	for _, n := range all {
		if !strings.HasPrefix(n.ID, id) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: %q", ErrAmbiguous, id)
		}
		match = n
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %q", store.ErrNotFound, id)
	}
	return match, nil
}

// Add creates and stores a new note.
func (s *Service) Add(ctx context.Context, title, content string) (*note.Note, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	n := note.New(title, content)
	if err := n.Validate(); err != nil {
		return nil, err
	}
	if err := s.Persistence.Insert(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Edit replaces the title and/or content of the note id. A nil field is left
// as it is.
func (s *Service) Edit(ctx context.Context, id string, title, content *string) (*note.Note, error) {
	n, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if title == nil && content == nil {
		return n, nil
	}
	if title != nil {
		n.Title = *title
	}
	if content != nil {
		n.Content = *content
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	n.Touch(time.Now())
	if err := s.Persistence.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Resolve looks up every id, exact or by unique prefix, and returns the
// distinct notes they name in the order first given.
func (s *Service) Resolve(ctx context.Context, ids ...string) ([]*note.Note, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	targets := make([]*note.Note, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		n, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		targets = append(targets, n)
	}
	return targets, nil
}

// Delete removes the given notes. Every id is resolved before anything is
// deleted so a typo does not leave a partial deletion behind.
func (s *Service) Delete(ctx context.Context, ids ...string) ([]*note.Note, error) {
	targets, err := s.Resolve(ctx, ids...)
	if err != nil {
		return nil, err
	}
	for i, n := range targets {
		if err := s.Persistence.Delete(ctx, n); err != nil {
			return targets[:i], fmt.Errorf("app: delete %s: %w", n.ID, err)
		}
	}
	return targets, nil
}

// Watch subscribes to store change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// ShortID trims id for display.
func ShortID(id string) string {
	if len(id) <= ShortIDLen {
		return id
	}
	return id[:ShortIDLen]
}
