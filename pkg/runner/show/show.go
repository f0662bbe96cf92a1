package show

import (
	"context"
	"errors"

	"tableflip.dev/notes/pkg/app"
	"tableflip.dev/notes/pkg/printers"
)

type Show struct {
	Service *app.Service
	ID      string
	JSON    bool
	Printer *printers.PrettyPrint
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show, no persistence")
	}
	found, err := n.Service.Get(ctx, n.ID)
	if err != nil {
		return err
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{ShowID: true}
	}
	if n.JSON {
		return pp.JSON(found)
	}
	pp.Note(found)
	return nil
}
