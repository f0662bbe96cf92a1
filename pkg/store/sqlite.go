package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"tableflip.dev/notes/pkg/note"
)

const sqliteFile = "notes.db"

// sqlitePersistence stores notes in a single table of a SQLite database that
// lives inside the configured base directory.
type sqlitePersistence struct {
	db     *sql.DB
	dir    string
	dbPath string
	log    *slog.Logger
}

func openSQLite(basePath string, logger *slog.Logger) (*sqlitePersistence, error) {
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	dbPath := filepath.Join(basePath, sqliteFile)
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	s := &sqlitePersistence{db: db, dir: basePath, dbPath: dbPath, log: logger}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return s, nil
}

func (s *sqlitePersistence) initSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_created ON notes(created_at);
`
	_, err := s.db.Exec(schema)
	return err
}

func (s *sqlitePersistence) FetchAll(ctx context.Context) ([]*note.Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, created_at, updated_at
		FROM notes`)
	if err != nil {
		return nil, fmt.Errorf("store: query notes: %w", err)
	}
	defer rows.Close()

	all := make([]*note.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: query notes: %w", err)
	}
	// Ordering happens in Go so both backends agree on ties and zero times.
	sortNotes(all)
	return all, nil
}

func (s *sqlitePersistence) Get(ctx context.Context, id string) (*note.Note, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, content, created_at, updated_at
		FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return n, err
}

func (s *sqlitePersistence) Insert(ctx context.Context, n *note.Note) error {
	if n == nil {
		return errors.New("store: nil note")
	}
	if n.ID == "" {
		n.ID = note.NewID()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Content, formatColumn(n.Created), formatColumn(n.Updated))
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("%w: %s", ErrExists, n.ID)
		}
		return fmt.Errorf("store: insert note: %w", err)
	}
	return nil
}

func (s *sqlitePersistence) Update(ctx context.Context, n *note.Note) error {
	if n == nil {
		return errors.New("store: nil note")
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE notes SET title = ?, content = ?, created_at = ?, updated_at = ?
		WHERE id = ?`,
		n.Title, n.Content, formatColumn(n.Created), formatColumn(n.Updated), n.ID)
	if err != nil {
		return fmt.Errorf("store: update note: %w", err)
	}
	return expectOneRow(res, n.ID)
}

func (s *sqlitePersistence) Delete(ctx context.Context, n *note.Note) error {
	if n == nil {
		return errors.New("store: nil note")
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, n.ID)
	if err != nil {
		return fmt.Errorf("store: delete note: %w", err)
	}
	return expectOneRow(res, n.ID)
}

func (s *sqlitePersistence) Watch(ctx context.Context) (<-chan Event, error) {
	base := filepath.Base(s.dbPath)
	return watchDir(ctx, s.dir, func(path string) (Event, bool) {
		// notes.db, notes.db-wal and notes.db-shm all signal a change.
		if !strings.HasPrefix(filepath.Base(path), base) {
			return Event{}, false
		}
		return Event{Type: EventInvalidated}, true
	}, s.log)
}

func (s *sqlitePersistence) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*note.Note, error) {
	var n note.Note
	var createdAt, updatedAt string
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("store: scan note: %w", err)
	}
	var err error
	if n.Created, err = parseColumn(createdAt); err != nil {
		return nil, fmt.Errorf("store: note %s created_at: %w", n.ID, err)
	}
	if n.Updated, err = parseColumn(updatedAt); err != nil {
		return nil, fmt.Errorf("store: note %s updated_at: %w", n.ID, err)
	}
	return &n, nil
}

func formatColumn(t note.Timestamp) string {
	if t.IsZero() {
		return ""
	}
	return note.FormatTime(t.Time)
}

func parseColumn(v string) (t note.Timestamp, err error) {
	if v == "" {
		return t, nil
	}
	t.Time, err = note.ParseTime(v)
	return t, err
}

func expectOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func isConstraintErr(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed")
}
