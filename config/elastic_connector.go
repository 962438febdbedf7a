package config

import (
	"github.com/olivere/elastic/v7"
)

// SetupElasticSearch creates a client for a single node. Sniffing is off so
// the node may sit behind a proxy or container network.
func SetupElasticSearch(url string) (*elastic.Client, error) {
	return elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
	)
}
