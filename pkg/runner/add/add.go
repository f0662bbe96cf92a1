package add

import (
	"context"
	"errors"

	"tableflip.dev/notes/pkg/app"
	"tableflip.dev/notes/pkg/printers"
)

type Add struct {
	Service *app.Service
	Title   string
	Content string
	JSON    bool
	Printer *printers.PrettyPrint
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no persistence")
	}
	created, err := n.Service.Add(ctx, n.Title, n.Content)
	if err != nil {
		return err
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{ShowID: true}
	}
	if n.JSON {
		return pp.JSON(created)
	}
	pp.Note(created)
	return nil
}
