package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/notes/pkg/app"
	"tableflip.dev/notes/pkg/note"
)

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
	Now    func() time.Time
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) now() time.Time {
	if pp.Now == nil {
		return time.Now()
	}
	return pp.Now()
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(pp.out(), format, a...)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " note")
	default:
		_, _ = c.Fprintln(pp.out(), " notes")
	}
}

// Notes prints one row per note.
func (pp *PrettyPrint) Notes(notes ...*note.Note) {
	if len(notes) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	now := pp.now()
	for _, n := range notes {
		summary := n.Summary()
		if summary == "" {
			summary = "Untitled"
		}
		when := faint.Sprint(n.Updated.Relative(now))
		if pp.ShowID {
			tbl.AddRow(y.Sprint(app.ShortID(n.ID)), summary, when)
		} else {
			tbl.AddRow(summary, when)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Note prints a single note in full.
func (pp *PrettyPrint) Note(n *note.Note) {
	t := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint)

	title := strings.TrimSpace(n.Title)
	if title == "" {
		title = "Untitled"
	}
	_, _ = t.Fprintln(pp.out(), title)
	if pp.ShowID {
		_, _ = faint.Fprintf(pp.out(), "id       %s\n", n.ID)
	}
	_, _ = faint.Fprintf(pp.out(), "created  %s\n", n.Created.Relative(pp.now()))
	_, _ = faint.Fprintf(pp.out(), "updated  %s\n", n.Updated.Relative(pp.now()))
	if n.Content != "" {
		pp.NewLine()
		_, _ = fmt.Fprintln(pp.out(), strings.TrimRight(n.Content, "\n"))
	}
	pp.NewLine()
}

// JSON prints v as indented JSON.
func (pp *PrettyPrint) JSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}
