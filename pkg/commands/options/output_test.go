package options

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestHandleErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	o := &OutputOptions{JSON: true, Out: &buf}
	if err := o.HandleError(errors.New("boom")); err != nil {
		t.Fatalf("HandleError returned %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"error":"boom"}` {
		t.Fatalf("output = %q", got)
	}
}

func TestHandleErrorPlain(t *testing.T) {
	boom := errors.New("boom")
	o := &OutputOptions{}
	if err := o.HandleError(boom); !errors.Is(err, boom) {
		t.Fatalf("HandleError = %v, want %v", err, boom)
	}
	if err := o.HandleError(nil); err != nil {
		t.Fatalf("HandleError(nil) = %v", err)
	}
}

func TestNoteOptionsChanged(t *testing.T) {
	cmd := &cobra.Command{Use: "edit"}
	o := &NoteOptions{}
	AddNoteArgs(cmd, o)
	if err := cmd.ParseFlags([]string{"--content", ""}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if o.TitleChanged() {
		t.Fatalf("title reported as changed")
	}
	if !o.ContentChanged() {
		t.Fatalf("explicit empty content not reported as changed")
	}
	if got := o.ContentOrArgs([]string{"ignored"}); got != "" {
		t.Fatalf("ContentOrArgs = %q, want empty", got)
	}
}
