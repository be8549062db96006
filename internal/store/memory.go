package store

import (
	"sort"
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

// Memory keeps project state in process memory. Entries never expire; the
// store lives as long as the command that opened it.
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get retrieves a value.
func (s *Memory) Get(key string) ([]byte, bool, error) {
	if val, found := s.cache.Get(key); found {
		return val.([]byte), true, nil
	}
	return nil, false, nil
}

// Set stores a value.
func (s *Memory) Set(key string, value []byte) error {
	s.cache.Set(key, value, gocache.NoExpiration)
	return nil
}

// Delete removes a value. Deleting a missing key is not an error.
func (s *Memory) Delete(key string) error {
	s.cache.Delete(key)
	return nil
}

// Keys lists stored keys with the given prefix, sorted.
func (s *Memory) Keys(prefix string) ([]string, error) {
	var keys []string
	for key := range s.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op for the memory driver.
func (s *Memory) Close() error {
	return nil
}
