package list

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/notes/pkg/app"
	"tableflip.dev/notes/pkg/note"
	"tableflip.dev/notes/pkg/printers"
	"tableflip.dev/notes/pkg/timeutil"
)

// List prints every note, oldest first. A non-zero Since keeps only notes
// changed within that window.
type List struct {
	Service *app.Service
	Since   time.Duration
	Now     func() time.Time
	ShowID  bool
	JSON    bool
	Printer *printers.PrettyPrint
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list, no persistence")
	}
	title := "Notes"
	var notes []*note.Note
	var err error
	if n.Since > 0 {
		now := time.Now
		if n.Now != nil {
			now = n.Now
		}
		title = "Notes changed in the last " + timeutil.FormatWindow(n.Since)
		notes, err = n.Service.UpdatedSince(ctx, now().Add(-n.Since))
	} else {
		notes, err = n.Service.List(ctx)
	}
	if err != nil {
		return err
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	pp.ShowID = n.ShowID
	if n.JSON {
		if notes == nil {
			notes = []*note.Note{}
		}
		return pp.JSON(notes)
	}
	pp.NewLine()
	pp.TitleWithCount(title, len(notes))
	pp.Notes(notes...)
	return nil
}
