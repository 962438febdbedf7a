package db

import (
	"context"
	"fmt"

	"bookshelf/models"

	"gopkg.in/redis.v5"
)

// RedisSlot stores the catalog as a plain string value.
type RedisSlot struct {
	Key         string
	RedisClient *redis.Client
}

func NewRedisSlot(client *redis.Client, key string) *RedisSlot {
	return &RedisSlot{Key: key, RedisClient: client}
}

func (slot *RedisSlot) Load(ctx context.Context) ([]models.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, err := slot.RedisClient.Get(slot.Key).Result()
	if err == redis.Nil {
		return []models.Book{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %q: %w", slot.Key, err)
	}

	return decodeCatalog([]byte(value))
}

func (slot *RedisSlot) Save(ctx context.Context, books []models.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeCatalog(books)
	if err != nil {
		return err
	}

	setCmd := slot.RedisClient.Set(slot.Key, string(data), 0)
	if setCmd.Err() != nil {
		return fmt.Errorf("writing slot %q: %w", slot.Key, setCmd.Err())
	}
	return nil
}
