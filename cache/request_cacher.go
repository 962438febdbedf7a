// Package cache keeps each user's most recent requests.
package cache

// RequestCacher stores at most MaxNumber values per key, newest first.
type RequestCacher interface {
	Write(key string, value []byte) error
	Read(key string) ([]string, error)
}
