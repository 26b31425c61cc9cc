package store

import (
	"context"
	"encoding/json"
	"sync"

	"triad/internal/domain"
)

type memoryRoot struct {
	mu   sync.RWMutex
	data map[string]map[string]json.RawMessage
}

// Memory is an in-process Store. Nested handles share the same root.
type Memory struct {
	root *memoryRoot
	path string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{root: &memoryRoot{data: make(map[string]map[string]json.RawMessage)}}
}

// Get decodes the value under key into out.
func (m *Memory) Get(ctx context.Context, key string, out any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := checkKey(key); err != nil {
		return false, err
	}
	m.root.mu.RLock()
	raw, ok := m.root.data[m.path][key]
	m.root.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

// Set stores v under key.
func (m *Memory) Set(ctx context.Context, key string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkKey(key); err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	m.root.mu.Lock()
	defer m.root.mu.Unlock()
	ns := m.root.data[m.path]
	if ns == nil {
		ns = make(map[string]json.RawMessage)
		m.root.data[m.path] = ns
	}
	ns[key] = raw
	return nil
}

// Delete removes key.
func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.root.mu.Lock()
	delete(m.root.data[m.path], key)
	m.root.mu.Unlock()
	return nil
}

// GetAll returns a copy of this namespace.
func (m *Memory) GetAll(ctx context.Context) (map[string]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.root.mu.RLock()
	defer m.root.mu.RUnlock()
	out := make(map[string]json.RawMessage, len(m.root.data[m.path]))
	for k, v := range m.root.data[m.path] {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out, nil
}

// Col returns the nested namespace name.
func (m *Memory) Col(name string) domain.Store {
	return &Memory{root: m.root, path: joinPath(m.path, name)}
}

// Path returns the namespace path.
func (m *Memory) Path() string { return m.path }

// Compile-time assertion that Memory implements domain.Store.
var _ domain.Store = (*Memory)(nil)
