package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/notes/pkg/note"
)

// diskvPersistence keeps one JSON document per note, keyed by note ID and
// sharded into directories named after the first two characters of the key.
type diskvPersistence struct {
	d        *diskv.Diskv
	basePath string
	log      *slog.Logger
}

func openDiskv(basePath string, logger *slog.Logger) (*diskvPersistence, error) {
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &diskvPersistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// No read cache: other processes edit the same files and Watch
		// triggers reloads that must observe their writes.
		CacheSizeMax: 0,
	}), basePath: basePath, log: logger}, nil
}

func (p *diskvPersistence) read(key string) (*note.Note, error) {
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	n := &note.Note{}
	if err := json.Unmarshal(val, n); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", key, err)
	}
	n.ID = key
	return n, nil
}

func (p *diskvPersistence) write(n *note.Note) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", n.ID, err)
	}
	return p.d.Write(n.ID, data)
}

func (p *diskvPersistence) FetchAll(ctx context.Context) ([]*note.Note, error) {
	all := make([]*note.Note, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if !validKey(key) {
			continue
		}
		n, err := p.read(key)
		if err != nil {
			// One unreadable file should not hide every other note.
			p.log.Warn("store: skipping unreadable note", "key", key, "error", err)
			continue
		}
		all = append(all, n)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sortNotes(all)
	return all, nil
}

func (p *diskvPersistence) Get(_ context.Context, id string) (*note.Note, error) {
	if !validKey(id) {
		return nil, ErrNotFound
	}
	return p.read(id)
}

func (p *diskvPersistence) Insert(_ context.Context, n *note.Note) error {
	if n == nil {
		return errors.New("store: nil note")
	}
	if n.ID == "" {
		n.ID = note.NewID()
	}
	if !validKey(n.ID) {
		return fmt.Errorf("store: invalid note id %q", n.ID)
	}
	if p.d.Has(n.ID) {
		return fmt.Errorf("%w: %s", ErrExists, n.ID)
	}
	return p.write(n)
}

func (p *diskvPersistence) Update(_ context.Context, n *note.Note) error {
	if n == nil {
		return errors.New("store: nil note")
	}
	if !validKey(n.ID) || !p.d.Has(n.ID) {
		return fmt.Errorf("%w: %s", ErrNotFound, n.ID)
	}
	return p.write(n)
}

func (p *diskvPersistence) Delete(_ context.Context, n *note.Note) error {
	if n == nil {
		return errors.New("store: nil note")
	}
	if !validKey(n.ID) || !p.d.Has(n.ID) {
		return fmt.Errorf("%w: %s", ErrNotFound, n.ID)
	}
	return p.d.Erase(n.ID)
}

func (p *diskvPersistence) Watch(ctx context.Context) (<-chan Event, error) {
	return watchDir(ctx, p.basePath, p.classify, p.log)
}

func (p *diskvPersistence) Close() error {
	return nil
}

// classify maps a changed path under basePath to a watch event.
func (p *diskvPersistence) classify(path string) (Event, bool) {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return Event{Type: EventInvalidated}, true
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) != 2 || !validKey(parts[1]) {
		return Event{Type: EventInvalidated}, true
	}
	return Event{Type: EventNoteChanged, ID: parts[1]}, true
}

func validKey(key string) bool {
	if len(key) < 2 || strings.HasPrefix(key, ".") {
		return false
	}
	return !strings.ContainsAny(key, `/\`)
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{key[:2]},
		FileName: key,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
