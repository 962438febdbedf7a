package db

import (
	"context"
	"sync"

	"bookshelf/models"
)

// MemorySlot keeps the encoded catalog in process memory.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (slot *MemorySlot) Load(_ context.Context) ([]models.Book, error) {
	slot.mu.Lock()
	defer slot.mu.Unlock()

	return decodeCatalog(slot.data)
}

func (slot *MemorySlot) Save(_ context.Context, books []models.Book) error {
	data, err := encodeCatalog(books)
	if err != nil {
		return err
	}

	slot.mu.Lock()
	slot.data = data
	slot.mu.Unlock()
	return nil
}

// Raw returns the stored bytes, nil when nothing was saved.
func (slot *MemorySlot) Raw() []byte {
	slot.mu.Lock()
	defer slot.mu.Unlock()

	return slot.data
}

// SetRaw replaces the stored bytes without decoding them.
func (slot *MemorySlot) SetRaw(data []byte) {
	slot.mu.Lock()
	slot.data = data
	slot.mu.Unlock()
}
