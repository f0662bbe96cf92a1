package ui

import (
	"context"
	"errors"
	"log/slog"

	"tableflip.dev/notes/pkg/store"
	"tableflip.dev/notes/pkg/tui"
)

// UI opens the full screen notes list.
type UI struct {
	Persistence store.Persistence
	Logger      *slog.Logger
	Style       string
	Version     string
}

func (d *UI) Do(ctx context.Context) error {
	if d.Persistence == nil {
		return errors.New("can not open the ui, no persistence")
	}
	return tui.Run(ctx, d.Persistence, tui.Options{
		Logger:  d.Logger,
		Style:   d.Style,
		Version: d.Version,
	})
}
