package models

type CatalogStats struct {
	NumberOfBooks   int `json:"number_of_books"`
	NumberOfAuthors int `json:"number_of_authors"`
}
