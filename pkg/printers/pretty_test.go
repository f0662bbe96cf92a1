package printers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/notes/pkg/note"
)

func init() {
	color.NoColor = true
}

func fixedNow() time.Time {
	return time.Date(2025, time.November, 3, 12, 0, 0, 0, time.UTC)
}

func sample() []*note.Note {
	ts := note.Timestamp{Time: time.Date(2025, time.November, 1, 9, 30, 0, 0, time.UTC)}
	return []*note.Note{
		{ID: "0123456789abcdef", Title: "groceries", Content: "milk\neggs", Created: ts, Updated: ts},
		{ID: "fedcba9876543210", Content: "\n  first line\nsecond", Created: ts, Updated: ts},
	}
}

func TestNotesTable(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{ShowID: true, Out: &buf, Now: fixedNow}
	pp.Notes(sample()...)
	out := buf.String()
	for _, want := range []string{"01234567", "groceries", "first line", "Nov 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789abcdef") {
		t.Fatalf("expected shortened ids:\n%s", out)
	}
}

func TestNotesEmpty(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Notes()
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestNoteDetail(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{ShowID: true, Out: &buf, Now: fixedNow}
	pp.Note(sample()[0])
	out := buf.String()
	for _, want := range []string{"groceries", "0123456789abcdef", "milk\neggs"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	if err := pp.JSON(sample()); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0]["title"] != "groceries" {
		t.Fatalf("decoded = %v", decoded)
	}
}
