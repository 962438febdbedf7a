package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bookshelf/models"
)

var (
	ErrMalformedCatalog = errors.New("malformed catalog data")
	ErrUnknownBackend   = errors.New("unknown catalog backend")
)

// CatalogSlot persists the whole catalog under a single key. Save overwrites
// the previous value; Load returns an empty catalog when nothing is stored.
type CatalogSlot interface {
	Load(ctx context.Context) ([]models.Book, error)
	Save(ctx context.Context, books []models.Book) error
}

func encodeCatalog(books []models.Book) ([]byte, error) {
	if books == nil {
		books = []models.Book{}
	}
	return json.Marshal(books)
}

func decodeCatalog(data []byte) ([]models.Book, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []models.Book{}, nil
	}

	var books []models.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}
	if books == nil {
		books = []models.Book{}
	}
	return books, nil
}
