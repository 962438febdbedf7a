package controller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"bookshelf/catalog"
	"bookshelf/db"
	"bookshelf/models"
	"bookshelf/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type failingSlot struct {
	db.CatalogSlot
	err error
}

func (slot *failingSlot) Save(context.Context, []models.Book) error {
	return slot.err
}

func setupController(t *testing.T, books ...models.Book) (*Controller, *db.MemorySlot, *render.Table) {
	t.Helper()

	slot := db.NewMemorySlot()
	require.NoError(t, slot.Save(context.Background(), books))
	table := render.NewTable()

	controller, err := Boot(context.Background(), slot, table, discardLogger())
	require.NoError(t, err)
	return controller, slot, table
}

func addBook(t *testing.T, c *Controller, name, author, topic string) models.Book {
	t.Helper()

	require.NoError(t, c.OnAdd())
	require.NoError(t, c.OnFormChange(models.BookInput{Name: name, Author: author, Topic: topic}))
	book, err := c.OnSubmit(context.Background())
	require.NoError(t, err)
	return book
}

func TestBoot_RendersPersistedCatalog(t *testing.T) {
	controller, _, table := setupController(t,
		models.Book{Id: "1", Name: "Dune", Author: "Herbert", Topic: "SciFi"},
		models.Book{Id: "2", Name: "Emma", Author: "Austen", Topic: "Classic"},
	)

	assert.Len(t, table.Rows(), 2)
	assert.Equal(t, Idle, controller.Snapshot().Dialog)
}

func TestBoot_MalformedCatalogFails(t *testing.T) {
	slot := db.NewMemorySlot()
	slot.SetRaw([]byte("{nope"))

	_, err := Boot(context.Background(), slot, render.NewTable(), discardLogger())
	assert.ErrorIs(t, err, db.ErrMalformedCatalog)
}

func TestBoot_MalformedCatalogWithReset(t *testing.T) {
	slot := db.NewMemorySlot()
	slot.SetRaw([]byte("{nope"))

	controller, err := Boot(context.Background(), db.ResetOnMalformed(slot, discardLogger()), render.NewTable(), discardLogger())
	require.NoError(t, err)
	assert.Empty(t, controller.Snapshot().Rows)
}

func TestSubmit_AddsSavesAndRenders(t *testing.T) {
	controller, slot, table := setupController(t)

	book := addBook(t, controller, "Dune", "Herbert", "SciFi")

	assert.NotEmpty(t, book.Id)
	rows := table.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Dune", rows[0].Name)
	assert.Equal(t, book.Id, rows[0].Delete.BookId)

	persisted, err := slot.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Book{book}, persisted)

	snapshot := controller.Snapshot()
	assert.Equal(t, Idle, snapshot.Dialog)
	assert.True(t, snapshot.Form.IsEmpty())
}

func TestSubmit_RendersWithActiveFilter(t *testing.T) {
	controller, _, table := setupController(t,
		models.Book{Id: "1", Name: "Dune", Author: "Herbert", Topic: "SciFi"},
	)
	controller.OnSearch("emma")
	assert.Empty(t, table.Rows())

	addBook(t, controller, "Emma", "Austen", "Classic")
	addBook(t, controller, "Beloved", "Morrison", "Novel")

	rows := table.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Emma", rows[0].Name)
}

func TestSubmit_RequiresAllFields(t *testing.T) {
	controller, slot, _ := setupController(t)
	require.NoError(t, controller.OnAdd())
	require.NoError(t, controller.OnFormChange(models.BookInput{Name: "Dune", Author: "  "}))

	_, err := controller.OnSubmit(context.Background())

	assert.ErrorIs(t, err, ErrInvalidBook)
	assert.Equal(t, AddDialogOpen, controller.Snapshot().Dialog)
	assert.Equal(t, "Dune", controller.Snapshot().Form.Name)
	assert.Equal(t, "[]", string(slot.Raw()))
}

func TestSubmit_TrimsFields(t *testing.T) {
	controller, _, _ := setupController(t)

	book := addBook(t, controller, "  Dune ", "Herbert\n", " SciFi")

	assert.Equal(t, "Dune", book.Name)
	assert.Equal(t, "Herbert", book.Author)
	assert.Equal(t, "SciFi", book.Topic)
}

func TestSubmit_WithoutDialog(t *testing.T) {
	controller, _, _ := setupController(t)

	_, err := controller.OnSubmit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSubmit_SaveFailureKeepsMutation(t *testing.T) {
	saveErr := errors.New("disk full")
	store := catalog.New(nil)
	table := render.NewTable()
	controller := New(store, &failingSlot{CatalogSlot: db.NewMemorySlot(), err: saveErr}, render.New(table), discardLogger())

	require.NoError(t, controller.OnAdd())
	require.NoError(t, controller.OnFormChange(models.BookInput{Name: "Dune", Author: "Herbert", Topic: "SciFi"}))
	_, err := controller.OnSubmit(context.Background())

	assert.ErrorIs(t, err, saveErr)
	assert.Equal(t, 1, store.Len())
	assert.Len(t, table.Rows(), 1)
	assert.Equal(t, Idle, controller.Snapshot().Dialog)
}

func TestAddDialog_CancelClearsForm(t *testing.T) {
	controller, slot, table := setupController(t)

	require.NoError(t, controller.OnAdd())
	require.NoError(t, controller.OnFormChange(models.BookInput{Name: "Dune", Author: "Herbert", Topic: "SciFi"}))
	controller.OnDialogClose()

	snapshot := controller.Snapshot()
	assert.Equal(t, Idle, snapshot.Dialog)
	assert.True(t, snapshot.Form.IsEmpty())
	assert.Empty(t, table.Rows())
	assert.Equal(t, "[]", string(slot.Raw()))

	require.NoError(t, controller.OnAdd())
	assert.True(t, controller.Snapshot().Form.IsEmpty())
}

func TestDialogs_AreMutuallyExclusive(t *testing.T) {
	controller, _, _ := setupController(t, models.Book{Id: "1", Name: "Dune", Author: "Herbert", Topic: "SciFi"})

	require.NoError(t, controller.OnAdd())
	assert.ErrorIs(t, controller.OnAdd(), ErrInvalidTransition)
	_, err := controller.OnDeleteRequested("1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	controller.OnDialogClose()

	_, err = controller.OnDeleteRequested("1")
	require.NoError(t, err)
	assert.ErrorIs(t, controller.OnAdd(), ErrInvalidTransition)
	assert.ErrorIs(t, controller.OnFormChange(models.BookInput{Name: "x"}), ErrInvalidTransition)
	_, err = controller.OnSubmit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDelete_ConfirmRemovesBook(t *testing.T) {
	controller, slot, table := setupController(t, models.Book{Id: "123", Name: "Dune", Author: "Herbert", Topic: "SciFi"})

	name, err := controller.OnDeleteRequested("123")
	require.NoError(t, err)
	assert.Equal(t, "Dune", name)

	snapshot := controller.Snapshot()
	assert.Equal(t, DeleteDialogOpen, snapshot.Dialog)
	assert.Equal(t, models.Id("123"), snapshot.PendingId)
	assert.Equal(t, "Dune", snapshot.PendingName)

	removed, err := controller.OnDeleteConfirmed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Id("123"), removed.Id)

	assert.Empty(t, table.Rows())
	assert.Equal(t, "[]", string(slot.Raw()))
	assert.Equal(t, Idle, controller.Snapshot().Dialog)
	assert.Empty(t, controller.Snapshot().PendingId)
}

func TestDelete_KeepsOthersInOrder(t *testing.T) {
	controller, _, table := setupController(t,
		models.Book{Id: "1", Name: "a"},
		models.Book{Id: "2", Name: "b"},
		models.Book{Id: "3", Name: "c"},
	)

	_, err := controller.OnDeleteRequested("2")
	require.NoError(t, err)
	_, err = controller.OnDeleteConfirmed(context.Background())
	require.NoError(t, err)

	rows := table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, models.Id("1"), rows[0].Id)
	assert.Equal(t, models.Id("3"), rows[1].Id)
}

func TestDelete_CancelLeavesCatalog(t *testing.T) {
	controller, slot, table := setupController(t, models.Book{Id: "1", Name: "Dune"})
	before := string(slot.Raw())

	_, err := controller.OnDeleteRequested("1")
	require.NoError(t, err)
	controller.OnDialogClose()

	assert.Len(t, table.Rows(), 1)
	assert.Equal(t, before, string(slot.Raw()))
	assert.Equal(t, Idle, controller.Snapshot().Dialog)

	_, err = controller.OnDeleteConfirmed(context.Background())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDelete_UnknownId(t *testing.T) {
	controller, _, _ := setupController(t, models.Book{Id: "1", Name: "Dune"})

	_, err := controller.OnDeleteRequested("404")

	assert.ErrorIs(t, err, catalog.ErrBookNotFound)
	assert.Equal(t, Idle, controller.Snapshot().Dialog)
}

func TestSearch_FiltersWithoutTouchingDialog(t *testing.T) {
	controller, _, table := setupController(t,
		models.Book{Id: "1", Name: "Dune"},
		models.Book{Id: "2", Name: "Dune Messiah"},
	)
	require.NoError(t, controller.OnAdd())

	rows := controller.OnSearch("  MESSIAH ")

	require.Len(t, rows, 1)
	assert.Equal(t, "Dune Messiah", rows[0].Name)
	assert.Equal(t, rows, table.Rows())
	snapshot := controller.Snapshot()
	assert.Equal(t, "messiah", snapshot.Query)
	assert.Equal(t, AddDialogOpen, snapshot.Dialog)

	assert.Len(t, controller.OnSearch(""), 2)
}

func TestStats(t *testing.T) {
	controller, _, _ := setupController(t,
		models.Book{Id: "1", Name: "Dune", Author: "Herbert"},
		models.Book{Id: "2", Name: "Emma", Author: "Austen"},
	)

	assert.Equal(t, models.CatalogStats{NumberOfBooks: 2, NumberOfAuthors: 2}, controller.Stats())
}
