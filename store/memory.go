package store

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store for tests.
// Thread-safe for concurrent reads and writes.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string][]byte
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		files: make(map[string][]byte),
	}
}

// List returns the names containing substr, sorted.
func (m *MemoryStore) List(_ context.Context, substr string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for name := range m.files {
		if strings.Contains(name, substr) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	return names, nil
}

// ReadAt reads from the stored bytes of name.
func (m *MemoryStore) ReadAt(_ context.Context, name string, p []byte, off int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[name]
	if !ok {
		return 0, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if off < 0 {
		return 0, fmt.Errorf("%s: negative offset %d", name, off)
	}
	if off >= int64(len(data)) {
		return 0, io.EOF
	}

	n := copy(p, data[off:])
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

// ReadFile returns a copy of the stored bytes of name.
func (m *MemoryStore) ReadFile(_ context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	return slices.Clone(data), nil
}

// Size returns the length of the stored bytes of name.
func (m *MemoryStore) Size(_ context.Context, name string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[name]
	if !ok {
		return 0, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	return int64(len(data)), nil
}

// WriteFile stores a copy of data under name.
func (m *MemoryStore) WriteFile(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[name] = slices.Clone(data)

	return nil
}
