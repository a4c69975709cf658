// Package save persists world snapshots under a string key. Two back ends
// are provided: a single JSON file and a PostgreSQL table.
package save

import (
	"errors"

	"tilequest/internal/world"
)

// ErrNotFound is returned by Load when no snapshot is stored under a key.
var ErrNotFound = errors.New("snapshot not found")

// Storage defines the interface for snapshot persistence.
type Storage interface {
	Save(key string, s world.Snapshot) error
	Load(key string) (world.Snapshot, error)
	Close() error
}

// Open picks a back end: PostgreSQL when dsn is set, otherwise the JSON
// file at path. Both empty means no persistence and a nil Storage.
func Open(path, dsn string) (Storage, error) {
	switch {
	case dsn != "":
		ps, err := NewPostgresStore(dsn)
		if err != nil {
			return nil, err
		}
		return ps, nil
	case path != "":
		js, err := NewJSONStore(path)
		if err != nil {
			return nil, err
		}
		return js, nil
	}
	return nil, nil
}
