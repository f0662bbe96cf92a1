// Package store persists notes. Two backends are available, diskv (one JSON
// document per note) and SQLite, both behind Persistence.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"tableflip.dev/notes/pkg/note"
)

var (
	ErrNotFound = errors.New("store: note not found")
	ErrExists   = errors.New("store: note already exists")
)

// Persistence defines the persistence contract for notes.
type Persistence interface {
	// FetchAll returns every note ordered by creation time, oldest first.
	FetchAll(ctx context.Context) ([]*note.Note, error)
	Get(ctx context.Context, id string) (*note.Note, error)
	Insert(ctx context.Context, n *note.Note) error
	Update(ctx context.Context, n *note.Note) error
	Delete(ctx context.Context, n *note.Note) error
	Watch(ctx context.Context) (<-chan Event, error)
	Close() error
}

const (
	DriverDiskv  = "diskv"
	DriverSQLite = "sqlite"
)

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger the store reports skipped files and watcher
// problems to. Without it the store logs nothing.
func WithLogger(logger *slog.Logger) Option {
	return func(o *loadOptions) {
		o.logger = logger
	}
}

// Load opens the Persistence selected by cfg. A nil cfg loads the
// configuration from the environment and config file.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	lo := loadOptions{}
	for _, opt := range opts {
		opt(&lo)
	}
	if lo.logger == nil {
		lo.logger = slog.New(slog.DiscardHandler)
	}

	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	switch driver := strings.ToLower(strings.TrimSpace(cfg.Driver())); driver {
	case "", DriverDiskv:
		return openDiskv(cfg.BasePath(), lo.logger)
	case DriverSQLite:
		return openSQLite(cfg.BasePath(), lo.logger)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}
}

func sortNotes(notes []*note.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		left := notes[i]
		right := notes[j]
		if left == nil || right == nil {
			return left != nil
		}
		lt := left.Created.Time
		rt := right.Created.Time
		switch {
		case lt.IsZero() && rt.IsZero():
			return left.ID < right.ID
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			if lt.Equal(rt) {
				return left.ID < right.ID
			}
			return lt.Before(rt)
		}
	})
}
