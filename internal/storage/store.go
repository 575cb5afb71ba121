// Package storage provides the persistence ports for the matching engine's
// learned stores. Every store is a whole-document JSON file that is loaded
// once at startup and fully rewritten on every mutation.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound indicates that the store has no persisted document yet.
var ErrNotFound = errors.New("store: no persisted document")

// Store is the persistence port for a single learned store. Implementations
// must make Save atomic: a concurrent reader never observes a partial write.
type Store interface {
	// Load decodes the persisted document into v. Returns ErrNotFound when
	// nothing has been persisted yet.
	Load(v interface{}) error
	// Save encodes v and replaces the persisted document.
	Save(v interface{}) error
}

// FileStore persists a document as an indented JSON file. Writes go to a
// temp file in the same directory followed by a rename, so readers only ever
// see a complete document.
type FileStore struct {
	path string
}

// NewFileStore creates a file store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and decodes the backing file.
func (s *FileStore) Load(v interface{}) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", s.path, err)
	}
	return nil
}

// Save encodes v and atomically replaces the backing file.
func (s *FileStore) Save(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", s.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// MemoryStore is an in-memory Store used by tests and as a no-persistence
// fallback.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load decodes the stored document into v.
func (s *MemoryStore) Load(v interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return ErrNotFound
	}
	if err := json.Unmarshal(s.data, v); err != nil {
		return fmt.Errorf("decode memory store: %w", err)
	}
	return nil
}

// Save encodes v and replaces the stored document.
func (s *MemoryStore) Save(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode memory store: %w", err)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}
