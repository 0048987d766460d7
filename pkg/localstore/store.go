package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Store is the browser-localStorage analog: a flat string key/value store.
// All implementations are safe for single-goroutine use only, mirroring the
// single-threaded event loop the original client ran on.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// FileStore keeps the whole key space in one JSON file and rewrites it on
// every mutation. A missing or unreadable file starts as an empty store.
type FileStore struct {
	path   string
	values map[string]string
}

func NewFileStore(path string) *FileStore {
	s := &FileStore{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil || values == nil {
		return s
	}

	s.values = values
	return s
}

func (s *FileStore) Get(key string) (string, bool) {
	value, ok := s.values[key]
	return value, ok
}

func (s *FileStore) Set(key, value string) error {
	s.values[key] = value
	return s.flush()
}

func (s *FileStore) Delete(key string) error {
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flush()
}

func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	// Write-then-rename so a crash mid-write cannot leave a torn file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0666); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// MemoryStore backs tests.
type MemoryStore struct {
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	value, ok := s.values[key]
	return value, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	delete(s.values, key)
	return nil
}
