// Package key provides CLI helpers to display the screen key bindings.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/notes/pkg/tui"
)

// Key prints the key bindings of the notes screen.
type Key struct {
	Out io.Writer
}

// Do renders one table per screen to Out, or stdout.
func (k *Key) Do(_ context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	bold := color.New(color.Bold)

	_, _ = fmt.Fprintln(out, "")
	var tbl *uitable.Table
	screen := ""
	for _, l := range tui.KeyLegend() {
		if l.Screen != screen {
			if tbl != nil {
				_, _ = fmt.Fprintln(out, tbl)
				_, _ = fmt.Fprintln(out, "")
			}
			screen = l.Screen
			tbl = uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint(screen), bold.Sprint("Action"))
			tbl.RightAlign(0)
		}
		tbl.AddRow(l.Keys, l.Action)
	}
	if tbl != nil {
		_, _ = fmt.Fprintln(out, tbl)
	}
	_, _ = fmt.Fprintln(out, "")
	return nil
}
