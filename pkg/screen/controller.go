// Package screen holds the list screen controller. It turns user gestures
// and navigation results into view-model and selection changes.
package screen

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"tableflip.dev/notes/pkg/note"
	"tableflip.dev/notes/pkg/selection"
	"tableflip.dev/notes/pkg/viewmodel"
)

// Navigator launches the flows that live outside the list screen. Their
// results come back through CreateResult and EditResult.
type Navigator interface {
	CreateNote()
	OpenNote(n note.Note)
	ShowAbout()
}

// Controller orchestrates the list screen. All methods must be called from
// one goroutine, the UI event loop.
type Controller struct {
	notes   *viewmodel.Collection
	tracker *selection.Tracker
	nav     Navigator
	log     *slog.Logger

	reloadPending bool
}

// New wires a controller around the given store, presenter and navigator.
// A nil logger discards log output.
func New(store viewmodel.Store, presenter viewmodel.Presenter, nav Navigator, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	notes := viewmodel.New(store, presenter)
	return &Controller{
		notes:   notes,
		tracker: selection.New(notes),
		nav:     nav,
		log:     logger,
	}
}

// Start loads the notes. It is called once when the screen opens.
func (c *Controller) Start(ctx context.Context) error {
	if err := c.notes.Load(ctx); err != nil {
		c.log.Error("screen: load notes", "error", err)
		return err
	}
	c.log.Debug("screen: loaded notes", "count", c.notes.Len())
	return nil
}

// Notes exposes the view-model for rendering.
func (c *Controller) Notes() *viewmodel.Collection { return c.notes }

// Selection exposes the tracker for rendering.
func (c *Controller) Selection() *selection.Tracker { return c.tracker }

// Title is the counter while selecting and empty otherwise.
func (c *Controller) Title() string {
	if c.tracker.Selecting() {
		return c.tracker.Title()
	}
	return ""
}

// AddPressed starts the create flow.
func (c *Controller) AddPressed() {
	c.nav.CreateNote()
}

// AboutPressed shows the about panel.
func (c *Controller) AboutPressed() {
	c.nav.ShowAbout()
}

// Tap opens the note at pos, or toggles it while selecting.
func (c *Controller) Tap(pos int) {
	if !c.tracker.Tap(pos) {
		c.afterSelectionChange(context.Background())
		return
	}
	e, ok := c.notes.At(pos)
	if !ok {
		return
	}
	c.log.Debug("screen: open note", "id", e.Note.ID)
	c.nav.OpenNote(*e.Note)
}

// LongPress starts selecting at pos.
func (c *Controller) LongPress(pos int) {
	if c.tracker.LongPress(pos) {
		c.log.Debug("screen: selection started", "position", pos)
	}
}

// ExitSelection leaves selecting mode.
func (c *Controller) ExitSelection() {
	if !c.tracker.Selecting() {
		return
	}
	c.tracker.Exit()
	c.afterSelectionChange(context.Background())
}

// DeletePressed runs the delete action. It returns the confirmation prompt
// and true when the user has to confirm; with nothing selected it leaves
// selecting mode directly.
func (c *Controller) DeletePressed() (prompt string, confirm bool) {
	count, confirm := c.tracker.RequestDelete()
	if !confirm {
		c.afterSelectionChange(context.Background())
		return "", false
	}
	return DeletePrompt(count), true
}

// ConfirmDelete deletes the selected notes and returns to normal mode.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	count := c.tracker.Count()
	err := c.tracker.ConfirmDelete(ctx, c.notes)
	if err != nil {
		c.log.Error("screen: delete notes", "requested", count, "error", err)
	} else {
		c.log.Debug("screen: deleted notes", "count", count)
	}
	c.afterSelectionChange(ctx)
	return err
}

// CancelDelete dismisses the confirmation and keeps the selection.
func (c *Controller) CancelDelete() {
	c.tracker.CancelDelete()
}

// CreateResult receives the outcome of the create flow. A nil note means the
// flow was cancelled.
func (c *Controller) CreateResult(ctx context.Context, n *note.Note) error {
	if n == nil {
		return nil
	}
	if err := c.notes.Add(ctx, n); err != nil {
		c.log.Error("screen: add note", "error", err)
		return err
	}
	c.log.Debug("screen: added note", "id", n.ID)
	return nil
}

// EditResult receives the outcome of the view/edit flow. A nil note means the
// flow was cancelled or nothing changed.
func (c *Controller) EditResult(ctx context.Context, n *note.Note) error {
	if n == nil {
		return nil
	}
	if err := c.notes.ApplyUpdate(ctx, n); err != nil {
		c.log.Error("screen: update note", "id", n.ID, "error", err)
		return err
	}
	c.log.Debug("screen: updated note", "id", n.ID)
	return nil
}

// StoreChanged reacts to a change made outside this screen. Reloading while
// selecting would shift the selected positions, so it waits until selecting
// ends.
func (c *Controller) StoreChanged(ctx context.Context) error {
	if c.tracker.Selecting() {
		c.reloadPending = true
		return nil
	}
	c.reloadPending = false
	return c.Start(ctx)
}

// Reload refreshes from the store on request.
func (c *Controller) Reload(ctx context.Context) error {
	return c.StoreChanged(ctx)
}

// ReloadPending reports whether a deferred reload is waiting.
func (c *Controller) ReloadPending() bool {
	return c.reloadPending
}

// afterSelectionChange runs a deferred reload once selecting has ended.
func (c *Controller) afterSelectionChange(ctx context.Context) {
	if c.reloadPending && !c.tracker.Selecting() {
		c.reloadPending = false
		if err := c.notes.Load(ctx); err != nil {
			c.log.Error("screen: deferred reload", "error", err)
		}
	}
}

// DeletePrompt is the confirmation message for deleting count notes.
func DeletePrompt(count int) string {
	if count == 1 {
		return "Delete 1 note?"
	}
	return fmt.Sprintf("Delete %d notes?", count)
}
