// Package render projects catalog books into table rows.
package render

import (
	"slices"
	"sync"

	"bookshelf/models"
)

const DELETE_LABEL = "Delete"

// DeleteAction is the per-row control that requests deletion of BookId.
type DeleteAction struct {
	Label  string    `json:"label"`
	BookId models.Id `json:"book_id"`
}

type Row struct {
	Id     models.Id    `json:"id"`
	Name   string       `json:"name"`
	Author string       `json:"author"`
	Topic  string       `json:"topic"`
	Delete DeleteAction `json:"delete"`
}

// View displays a table body. Replace swaps every row at once.
type View interface {
	Replace(rows []Row)
}

type Renderer struct {
	view View
}

func New(view View) *Renderer {
	return &Renderer{view: view}
}

// Render builds one row per book and replaces the view's contents with them.
func (renderer *Renderer) Render(books []models.Book) []Row {
	rows := Rows(books)
	renderer.view.Replace(rows)
	return rows
}

func Rows(books []models.Book) []Row {
	rows := make([]Row, 0, len(books))
	for _, book := range books {
		rows = append(rows, Row{
			Id:     book.Id,
			Name:   book.Name,
			Author: book.Author,
			Topic:  book.Topic,
			Delete: DeleteAction{Label: DELETE_LABEL, BookId: book.Id},
		})
	}
	return rows
}

// Table is an in-memory View. It is safe for concurrent readers.
type Table struct {
	mu   sync.RWMutex
	rows []Row
}

func NewTable() *Table {
	return &Table{rows: []Row{}}
}

func (table *Table) Replace(rows []Row) {
	rows = slices.Clone(rows)
	if rows == nil {
		rows = []Row{}
	}

	table.mu.Lock()
	table.rows = rows
	table.mu.Unlock()
}

func (table *Table) Rows() []Row {
	table.mu.RLock()
	defer table.mu.RUnlock()

	return slices.Clone(table.rows)
}
