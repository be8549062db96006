package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const diskExt = ".json"

// Disk persists each key as one file under a data directory. Keys map to
// file names directly, so callers must use filesystem-safe keys.
type Disk struct {
	dir string
}

// NewDisk creates a disk store rooted at dir. The directory is created
// lazily on first write.
func NewDisk(dir string) *Disk {
	return &Disk{dir: dir}
}

// Get retrieves a value. A missing file is a miss, not an error.
func (s *Disk) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

// Set stores a value.
func (s *Disk) Set(key string, value []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	if err := os.WriteFile(s.path(key), value, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete removes a value. Deleting a missing key is not an error.
func (s *Disk) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys with the given prefix, sorted.
func (s *Disk) Keys(prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list store dir: %w", err)
	}

	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, diskExt) {
			continue
		}
		key := strings.TrimSuffix(name, diskExt)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op for the disk driver.
func (s *Disk) Close() error {
	return nil
}

func (s *Disk) path(key string) string {
	return filepath.Join(s.dir, key+diskExt)
}
