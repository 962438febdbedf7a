// Package controller turns user intents into catalog mutations, persistence
// writes and table redraws, and tracks which dialog is open.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"bookshelf/catalog"
	"bookshelf/db"
	"bookshelf/models"
	"bookshelf/render"

	"github.com/go-playground/validator/v10"
)

type DialogState string

const (
	Idle             DialogState = "idle"
	AddDialogOpen    DialogState = "add"
	DeleteDialogOpen DialogState = "delete"
)

var (
	ErrInvalidTransition = errors.New("intent not allowed in current dialog state")
	ErrInvalidBook       = errors.New("invalid book")
)

// Snapshot is the controller state as a UI binding sees it.
type Snapshot struct {
	Dialog      DialogState      `json:"dialog"`
	PendingId   models.Id        `json:"pending_id,omitempty"`
	PendingName string           `json:"pending_name,omitempty"`
	Form        models.BookInput `json:"form"`
	Query       string           `json:"query"`
	Rows        []render.Row     `json:"rows"`
}

// Controller serializes intents: each one runs to completion before the next.
type Controller struct {
	mu       sync.Mutex
	store    *catalog.Store
	slot     db.CatalogSlot
	renderer *render.Renderer
	validate *validator.Validate
	logger   *slog.Logger

	dialog      DialogState
	pendingId   models.Id
	pendingName string
	form        models.BookInput
	rows        []render.Row
}

func New(store *catalog.Store, slot db.CatalogSlot, renderer *render.Renderer, logger *slog.Logger) *Controller {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.SetTagName("binding")

	controller := &Controller{
		store:    store,
		slot:     slot,
		renderer: renderer,
		validate: validate,
		logger:   logger.With("component", "controller"),
		dialog:   Idle,
	}
	controller.render()
	return controller
}

// Boot loads the persisted catalog once and draws the initial table.
func Boot(ctx context.Context, slot db.CatalogSlot, view render.View, logger *slog.Logger) (*Controller, error) {
	books, err := slot.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	logger.Info("catalog loaded", "books", len(books))
	return New(catalog.New(books), slot, render.New(view), logger), nil
}

// OnAdd opens the add dialog with an empty form.
func (c *Controller) OnAdd() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dialog != Idle {
		return fmt.Errorf("%w: open add dialog while %s", ErrInvalidTransition, c.dialog)
	}

	c.dialog = AddDialogOpen
	c.form = models.BookInput{}
	return nil
}

// OnFormChange records the unsubmitted add form contents.
func (c *Controller) OnFormChange(input models.BookInput) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dialog != AddDialogOpen {
		return fmt.Errorf("%w: edit form while %s", ErrInvalidTransition, c.dialog)
	}

	c.form = input
	return nil
}

// OnSubmit adds the book described by the form, saves, redraws and closes
// the dialog. A save failure is returned after the dialog closes; the book
// stays in the catalog.
func (c *Controller) OnSubmit(ctx context.Context) (models.Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dialog != AddDialogOpen {
		return models.Book{}, fmt.Errorf("%w: submit while %s", ErrInvalidTransition, c.dialog)
	}

	input := models.BookInput{
		Name:   strings.TrimSpace(c.form.Name),
		Author: strings.TrimSpace(c.form.Author),
		Topic:  strings.TrimSpace(c.form.Topic),
	}
	if err := c.validate.Struct(input); err != nil {
		return models.Book{}, fmt.Errorf("%w: %v", ErrInvalidBook, err)
	}

	book := c.store.Add(input)
	c.logger.Info("book added", "id", book.Id, "name", book.Name)

	err := c.save(ctx)
	c.render()
	c.close()
	return book, err
}

// OnDeleteRequested opens the delete dialog for id and returns the name of
// the book awaiting confirmation.
func (c *Controller) OnDeleteRequested(id models.Id) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dialog != Idle {
		return "", fmt.Errorf("%w: request delete while %s", ErrInvalidTransition, c.dialog)
	}

	book, err := c.store.Get(id)
	if err != nil {
		return "", fmt.Errorf("requesting delete of %s: %w", id, err)
	}

	c.dialog = DeleteDialogOpen
	c.pendingId = book.Id
	c.pendingName = book.Name
	return book.Name, nil
}

// OnDeleteConfirmed removes the pending book, saves, redraws and closes.
func (c *Controller) OnDeleteConfirmed(ctx context.Context) (models.Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dialog != DeleteDialogOpen {
		return models.Book{}, fmt.Errorf("%w: confirm delete while %s", ErrInvalidTransition, c.dialog)
	}

	book, err := c.store.Remove(c.pendingId)
	if err != nil {
		c.close()
		return models.Book{}, fmt.Errorf("deleting %s: %w", c.pendingId, err)
	}
	c.logger.Info("book removed", "id", book.Id, "name", book.Name)

	err = c.save(ctx)
	c.render()
	c.close()
	return book, err
}

// OnSearch sets the active filter and redraws. Dialog state is untouched.
func (c *Controller) OnSearch(input string) []render.Row {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.SetFilter(strings.TrimSpace(input))
	return c.render()
}

// OnDialogClose closes whichever dialog is open and discards unsubmitted
// form input. It covers cancel, close, escape and background clicks.
func (c *Controller) OnDialogClose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.close()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Dialog:      c.dialog,
		PendingId:   c.pendingId,
		PendingName: c.pendingName,
		Form:        c.form,
		Query:       c.store.Filter(),
		Rows:        append([]render.Row{}, c.rows...),
	}
}

func (c *Controller) Stats() models.CatalogStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.store.Stats()
}

func (c *Controller) save(ctx context.Context) error {
	if err := c.slot.Save(ctx, c.store.All()); err != nil {
		c.logger.Error("saving catalog failed", "error", err)
		return fmt.Errorf("saving catalog: %w", err)
	}
	return nil
}

func (c *Controller) render() []render.Row {
	c.rows = c.renderer.Render(c.store.Visible())
	return append([]render.Row{}, c.rows...)
}

func (c *Controller) close() {
	c.dialog = Idle
	c.pendingId = ""
	c.pendingName = ""
	c.form = models.BookInput{}
}
