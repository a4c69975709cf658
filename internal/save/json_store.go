package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"tilequest/internal/world"
)

// JSONStore keeps every snapshot in one JSON file.
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     map[string]world.Snapshot
}

// NewJSONStore opens the store at filePath, creating the file when missing.
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data:     make(map[string]world.Snapshot),
	}
	raw, err := os.ReadFile(filePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := store.saveToFile(); err != nil {
			return nil, fmt.Errorf("create json store: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("read json store: %w", err)
	default:
		if err := json.Unmarshal(raw, &store.data); err != nil {
			return nil, fmt.Errorf("decode json store %s: %w", filePath, err)
		}
	}
	return store, nil
}

// saveToFile writes the whole store. The caller must not hold the mutex.
func (js *JSONStore) saveToFile() error {
	js.mutex.RLock()
	data, err := json.MarshalIndent(js.data, "", "  ")
	js.mutex.RUnlock()
	if err != nil {
		return err
	}
	tmp := js.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, js.filePath)
}

// Save stores s under key and flushes the file.
func (js *JSONStore) Save(key string, s world.Snapshot) error {
	js.mutex.Lock()
	js.data[key] = s
	js.mutex.Unlock()

	if err := js.saveToFile(); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

// Load returns the snapshot stored under key.
func (js *JSONStore) Load(key string) (world.Snapshot, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	s, ok := js.data[key]
	if !ok {
		return world.Snapshot{}, fmt.Errorf("load %q: %w", key, ErrNotFound)
	}
	return s, nil
}

// Close is a no-op; every Save already flushed.
func (js *JSONStore) Close() error { return nil }
