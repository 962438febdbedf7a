package db

import (
	"context"
	"encoding/json"
	"fmt"

	"bookshelf/models"

	"github.com/olivere/elastic/v7"
)

// ElasticSlot stores the catalog as a single document whose id is the slot key.
type ElasticSlot struct {
	IndexName     string
	Key           string
	ElasticClient *elastic.Client
}

type catalogDocument struct {
	Books json.RawMessage `json:"books"`
}

func NewElasticSlot(client *elastic.Client, indexName, key string) *ElasticSlot {
	return &ElasticSlot{IndexName: indexName, Key: key, ElasticClient: client}
}

func (slot *ElasticSlot) Load(ctx context.Context) ([]models.Book, error) {
	doc, err := slot.ElasticClient.
		Get().
		Index(slot.IndexName).
		Id(slot.Key).
		Do(ctx)

	if elastic.IsNotFound(err) {
		return []models.Book{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %q: %w", slot.Key, err)
	}
	if !doc.Found || len(doc.Source) == 0 {
		return []models.Book{}, nil
	}

	var document catalogDocument
	if err := json.Unmarshal(doc.Source, &document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}

	return decodeCatalog(document.Books)
}

func (slot *ElasticSlot) Save(ctx context.Context, books []models.Book) error {
	data, err := encodeCatalog(books)
	if err != nil {
		return err
	}

	_, err = slot.ElasticClient.
		Index().
		Index(slot.IndexName).
		Id(slot.Key).
		BodyJson(catalogDocument{Books: data}).
		Refresh("true").
		Do(ctx)

	if err != nil {
		return fmt.Errorf("writing slot %q: %w", slot.Key, err)
	}
	return nil
}
