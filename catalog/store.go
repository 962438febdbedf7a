// Package catalog holds the in-memory book catalog.
package catalog

import (
	"errors"
	"slices"
	"strings"

	"bookshelf/models"

	"github.com/google/uuid"
)

var ErrBookNotFound = errors.New("book not found")

// IdGenerator returns a fresh book id.
type IdGenerator func() models.Id

// NewTimeOrderedId returns a UUIDv7, which sorts by creation time.
func NewTimeOrderedId() models.Id {
	id, err := uuid.NewV7()
	if err != nil {
		return models.Id(uuid.NewString())
	}
	return models.Id(id.String())
}

// Store owns the ordered catalog and the active search filter. It is not safe for concurrent use; the
// controller serializes access.
type Store struct {
	books  []models.Book
	filter string
	newId  IdGenerator
}

func New(books []models.Book) *Store {
	return NewWithIds(books, NewTimeOrderedId)
}

func NewWithIds(books []models.Book, newId IdGenerator) *Store {
	return &Store{
		books: slices.Clone(books),
		newId: newId,
	}
}

// Add appends a new book built from input and returns it.
func (store *Store) Add(input models.BookInput) models.Book {
	book := models.Book{
		Id:     store.newId(),
		Name:   input.Name,
		Author: input.Author,
		Topic:  input.Topic,
	}
	store.books = append(store.books, book)
	return book
}

// Remove deletes the book with the given id, keeping the order of the rest.
func (store *Store) Remove(id models.Id) (models.Book, error) {
	idx := store.indexOf(id)
	if idx < 0 {
		return models.Book{}, ErrBookNotFound
	}

	book := store.books[idx]
	store.books = slices.Delete(store.books, idx, idx+1)
	return book, nil
}

func (store *Store) Get(id models.Id) (models.Book, error) {
	idx := store.indexOf(id)
	if idx < 0 {
		return models.Book{}, ErrBookNotFound
	}
	return store.books[idx], nil
}

// List returns the books whose name contains filter, ignoring case.
// An empty filter returns the whole catalog.
func (store *Store) List(filter string) []models.Book {
	if filter == "" {
		return store.All()
	}

	filter = strings.ToLower(filter)
	matches := make([]models.Book, 0)
	for _, book := range store.books {
		if strings.Contains(strings.ToLower(book.Name), filter) {
			matches = append(matches, book)
		}
	}
	return matches
}

// SetFilter sets the active filter used by Visible. It is stored lowercased.
func (store *Store) SetFilter(filter string) {
	store.filter = strings.ToLower(filter)
}

func (store *Store) Filter() string {
	return store.filter
}

// Visible lists the books matching the active filter.
func (store *Store) Visible() []models.Book {
	return store.List(store.filter)
}

// All returns a copy of the full catalog in insertion order.
func (store *Store) All() []models.Book {
	books := make([]models.Book, len(store.books))
	copy(books, store.books)
	return books
}

func (store *Store) Len() int {
	return len(store.books)
}

func (store *Store) Stats() models.CatalogStats {
	authors := make(map[string]struct{})
	for _, book := range store.books {
		authors[book.Author] = struct{}{}
	}

	return models.CatalogStats{
		NumberOfBooks:   len(store.books),
		NumberOfAuthors: len(authors),
	}
}

func (store *Store) indexOf(id models.Id) int {
	return slices.IndexFunc(store.books, func(book models.Book) bool {
		return book.Id == id
	})
}
