package remove

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/notes/pkg/app"
	"tableflip.dev/notes/pkg/note"
	"tableflip.dev/notes/pkg/printers"
)

type Remove struct {
	Service *app.Service
	IDs     []string
	JSON    bool
	Printer *printers.PrettyPrint

	// Confirm, when set, is asked with the number of distinct notes the IDs
	// resolve to. Nothing is deleted unless it returns true.
	Confirm func(count int) (bool, error)
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no persistence")
	}
	if len(n.IDs) == 0 {
		return errors.New("no note id given")
	}
	ids := n.IDs
	if n.Confirm != nil {
		targets, err := n.Service.Resolve(ctx, ids...)
		if err != nil {
			return err
		}
		ok, err := n.Confirm(len(targets))
		if err != nil || !ok {
			return err
		}
		ids = make([]string, 0, len(targets))
		for _, t := range targets {
			ids = append(ids, t.ID)
		}
	}
	deleted, err := n.Service.Delete(ctx, ids...)
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{ShowID: true}
	}
	if n.JSON {
		if err != nil {
			return err
		}
		if deleted == nil {
			deleted = []*note.Note{}
		}
		return pp.JSON(deleted)
	}
	if len(deleted) > 0 {
		pp.Printf("Deleted %s:\n", plural(len(deleted)))
		pp.Notes(deleted...)
	}
	return err
}

func plural(n int) string {
	if n == 1 {
		return "1 note"
	}
	return fmt.Sprintf("%d notes", n)
}
