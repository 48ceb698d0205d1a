// Package prefs persists the two user preferences that survive a restart:
// the generator hotkey map and the sidebar generator visibility flag.
package prefs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
)

// Preference keys.
const (
	KeyGeneratorHotkeys        = "generator_hotkeys"
	KeySidebarGeneratorVisible = "sidebar_generator_visible"
)

// Store is a string keyed preference store.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// DefaultPath returns the prefs file location under the XDG state directory.
func DefaultPath() (string, error) {
	path, err := xdg.StateFile(filepath.Join("boxdeck", "prefs.json"))
	if err != nil {
		return "", fmt.Errorf("resolve prefs path: %w", err)
	}
	return path, nil
}

// FileStore keeps preferences in a JSON object on disk. It is safe for
// concurrent use by several SSH sessions in one process.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
	last   []byte
}

// OpenFileStore loads the store at path. A missing or malformed file yields an
// empty store; only unreadable files are reported.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, values: make(map[string]string)}
	if _, err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *FileStore) Path() string { return s.path }

// Get returns the value stored under key.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key and writes the file.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.values[key]; ok && cur == value {
		return nil
	}
	s.values[key] = value
	return s.writeLocked()
}

// Reload re-reads the file and reports whether its content changed since the
// last read or write.
func (s *FileStore) Reload() (bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		data = nil
	} else if err != nil {
		return false, fmt.Errorf("read prefs: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last != nil && bytes.Equal(data, s.last) {
		return false, nil
	}
	s.last = data

	values := make(map[string]string)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &values); err != nil {
			log.Warn("discarding malformed prefs file", "path", s.path, "err", err)
			values = make(map[string]string)
		}
	}
	changed := !maps.Equal(values, s.values)
	s.values = values
	return changed, nil
}

func (s *FileStore) writeLocked() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create prefs directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	s.last = data
	return nil
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string

	// SetErr, when non-nil, is returned by every Set.
	SetErr error
}

// NewMemoryStore returns a store seeded with values.
func NewMemoryStore(values map[string]string) *MemoryStore {
	m := &MemoryStore{values: make(map[string]string, len(values))}
	maps.Copy(m.values, values)
	return m
}

// Get returns the value stored under key.
func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[key] = value
	return nil
}
