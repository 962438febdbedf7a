package cache

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

const MAX_CACHED_USERS = 1024

// LRURequestCacher keeps lists in memory. Keys beyond MAX_CACHED_USERS
// evict the least recently written one.
type LRURequestCacher struct {
	MaxNumber int

	mu    sync.Mutex
	lists *lru.Cache[string, []string]
}

func CreateLRUCache(maxNumber int) (*LRURequestCacher, error) {
	if maxNumber < 1 {
		return nil, fmt.Errorf("max number of cached requests must be positive, got %d", maxNumber)
	}

	lists, err := lru.New[string, []string](MAX_CACHED_USERS)
	if err != nil {
		return nil, err
	}
	return &LRURequestCacher{MaxNumber: maxNumber, lists: lists}, nil
}

func (cacher *LRURequestCacher) Write(key string, value []byte) error {
	cacher.mu.Lock()
	defer cacher.mu.Unlock()

	previous, _ := cacher.lists.Get(key)

	size := min(len(previous)+1, cacher.MaxNumber)
	list := make([]string, 0, size)
	list = append(list, string(value))
	list = append(list, previous[:size-1]...)

	cacher.lists.Add(key, list)
	return nil
}

func (cacher *LRURequestCacher) Read(key string) ([]string, error) {
	list, ok := cacher.lists.Peek(key)
	if !ok {
		return []string{}, nil
	}
	return append([]string{}, list...), nil
}
