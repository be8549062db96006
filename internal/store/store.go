// Package store provides the key-value persistence layer behind project
// state. Three drivers share one interface: in-process memory, a flat file
// directory, and SQLite.
package store

import (
	"errors"
	"fmt"

	"github.com/mfedotov/brdforge/internal/model"
)

// Store is a flat key-value namespace. Values are opaque byte slices;
// callers own serialization. Keys listed by Keys come back sorted.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys(prefix string) ([]string, error)
	Close() error
}

// Open constructs the driver named by cfg.Driver.
func Open(cfg model.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case model.DriverMemory, "":
		return NewMemory(), nil
	case model.DriverDisk:
		if cfg.Path == "" {
			return nil, errors.New("disk store requires a path")
		}
		return NewDisk(cfg.Path), nil
	case model.DriverSQLite:
		if cfg.Path == "" {
			return nil, errors.New("sqlite store requires a path")
		}
		return OpenSQLite(cfg.Path)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
