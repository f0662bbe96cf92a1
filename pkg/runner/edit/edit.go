package edit

import (
	"context"
	"errors"

	"tableflip.dev/notes/pkg/app"
	"tableflip.dev/notes/pkg/printers"
)

// Edit replaces the title and/or content of one note. Nil fields are kept.
type Edit struct {
	Service *app.Service
	ID      string
	Title   *string
	Content *string
	JSON    bool
	Printer *printers.PrettyPrint
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no persistence")
	}
	if n.Title == nil && n.Content == nil {
		return errors.New("nothing to change, set --title or --content")
	}
	updated, err := n.Service.Edit(ctx, n.ID, n.Title, n.Content)
	if err != nil {
		return err
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{ShowID: true}
	}
	if n.JSON {
		return pp.JSON(updated)
	}
	pp.Note(updated)
	return nil
}
