package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bookshelf/config"
	"bookshelf/models"
)

// Open builds the slot named by cfg.Backend. The returned close function
// releases the backend's connections.
func Open(cfg *config.Config, logger *slog.Logger) (CatalogSlot, func() error, error) {
	logger = logger.With("component", "db", "backend", cfg.Backend)

	var (
		slot    CatalogSlot
		closeFn = func() error { return nil }
	)

	switch cfg.Backend {
	case config.BACKEND_MEMORY:
		slot = NewMemorySlot()
	case config.BACKEND_SQLITE:
		sqliteSlot, err := NewSQLiteSlot(cfg.SQLitePath, cfg.CatalogKey, logger)
		if err != nil {
			return nil, nil, err
		}
		slot, closeFn = sqliteSlot, sqliteSlot.Close
	case config.BACKEND_REDIS:
		client, err := config.SetupRedis(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		slot, closeFn = NewRedisSlot(client, cfg.CatalogKey), client.Close
	case config.BACKEND_ELASTIC:
		client, err := config.SetupElasticSearch(cfg.ElasticURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to elasticsearch at %s: %w", cfg.ElasticURL, err)
		}
		slot = NewElasticSlot(client, cfg.ElasticIndex, cfg.CatalogKey)
		closeFn = func() error {
			client.Stop()
			return nil
		}
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	if cfg.ResetOnMalformed {
		slot = ResetOnMalformed(slot, logger)
	}

	logger.Info("catalog slot opened", "key", cfg.CatalogKey)
	return slot, closeFn, nil
}

type resetOnMalformedSlot struct {
	CatalogSlot
	logger *slog.Logger
}

// ResetOnMalformed wraps slot so that undecodable content loads as an empty
// catalog instead of failing. The bad content is replaced on the next save.
func ResetOnMalformed(slot CatalogSlot, logger *slog.Logger) CatalogSlot {
	return &resetOnMalformedSlot{CatalogSlot: slot, logger: logger}
}

func (slot *resetOnMalformedSlot) Load(ctx context.Context) ([]models.Book, error) {
	books, err := slot.CatalogSlot.Load(ctx)
	if errors.Is(err, ErrMalformedCatalog) {
		slot.logger.Warn("discarding malformed catalog", "error", err)
		return []models.Book{}, nil
	}
	return books, err
}
