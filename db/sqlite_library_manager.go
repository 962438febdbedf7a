package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"bookshelf/models"

	_ "modernc.org/sqlite"
)

// SQLiteSlot stores the catalog as one row of a key-value table.
type SQLiteSlot struct {
	db     *sql.DB
	key    string
	logger *slog.Logger
}

// NewSQLiteSlot opens (and creates if needed) the database at path.
func NewSQLiteSlot(path, key string, logger *slog.Logger) (*SQLiteSlot, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS slots (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("sqlite slot initialized", "path", path, "key", key)
	return &SQLiteSlot{db: db, key: key, logger: logger}, nil
}

func (slot *SQLiteSlot) Load(ctx context.Context) ([]models.Book, error) {
	var value string
	err := slot.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE key = ?", slot.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.Book{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %q: %w", slot.key, err)
	}

	return decodeCatalog([]byte(value))
}

func (slot *SQLiteSlot) Save(ctx context.Context, books []models.Book) error {
	data, err := encodeCatalog(books)
	if err != nil {
		return err
	}

	_, err = slot.db.ExecContext(ctx, `
		INSERT INTO slots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		slot.key, string(data))
	if err != nil {
		return fmt.Errorf("writing slot %q: %w", slot.key, err)
	}
	return nil
}

func (slot *SQLiteSlot) Close() error {
	return slot.db.Close()
}
