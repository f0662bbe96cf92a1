package remove

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/notes/pkg/app"
	"tableflip.dev/notes/pkg/printers"
	"tableflip.dev/notes/pkg/store"
)

type testConfig struct{ path string }

func (c testConfig) BasePath() string { return c.path }
func (c testConfig) Driver() string   { return store.DriverSQLite }

func TestRemoveByPrefix(t *testing.T) {
	color.NoColor = true
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer p.Close()
	svc := &app.Service{Persistence: p}
	ctx := context.Background()

	keep, err := svc.Add(ctx, "keep", "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	drop, err := svc.Add(ctx, "drop", "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	var buf bytes.Buffer
	r := &Remove{Service: svc, IDs: []string{drop.ID[:app.ShortIDLen]}, Printer: &printers.PrettyPrint{Out: &buf}}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !strings.Contains(buf.String(), "Deleted 1 note") {
		t.Fatalf("output = %q", buf.String())
	}
	if _, err := p.Get(ctx, drop.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Get dropped err = %v, want ErrNotFound", err)
	}
	if _, err := p.Get(ctx, keep.ID); err != nil {
		t.Fatalf("Get kept: %v", err)
	}
}

func TestRemoveRequiresIDs(t *testing.T) {
	r := &Remove{Service: &app.Service{}}
	if err := r.Do(context.Background()); err == nil {
		t.Fatalf("expected error without ids")
	}
}

func TestRemoveConfirmCountsDistinctNotes(t *testing.T) {
	color.NoColor = true
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer p.Close()
	svc := &app.Service{Persistence: p}
	ctx := context.Background()

	n, err := svc.Add(ctx, "only", "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	var asked []int
	answer := false
	r := &Remove{
		Service: svc,
		IDs:     []string{n.ID, n.ID[:app.ShortIDLen]},
		Printer: &printers.PrettyPrint{Out: &bytes.Buffer{}},
		Confirm: func(count int) (bool, error) {
			asked = append(asked, count)
			return answer, nil
		},
	}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("Do declined: %v", err)
	}
	if _, err := p.Get(ctx, n.ID); err != nil {
		t.Fatalf("declined delete removed the note: %v", err)
	}

	answer = true
	if err := r.Do(ctx); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(asked) != 2 || asked[0] != 1 || asked[1] != 1 {
		t.Fatalf("confirm asked with %v, want [1 1]", asked)
	}
	if _, err := p.Get(ctx, n.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Get err = %v, want ErrNotFound", err)
	}
}

func TestRemoveConfirmSkippedOnUnknownID(t *testing.T) {
	p, err := store.Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer p.Close()
	called := false
	r := &Remove{
		Service: &app.Service{Persistence: p},
		IDs:     []string{"missing"},
		Confirm: func(int) (bool, error) {
			called = true
			return true, nil
		},
	}
	if err := r.Do(context.Background()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Do err = %v, want ErrNotFound", err)
	}
	if called {
		t.Fatalf("confirm asked for an id that does not resolve")
	}
}
