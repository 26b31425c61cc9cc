package interfaces

import (
	"context"
	"encoding/json"
)

// Store is a hierarchical key/value handle. Col yields a nested namespace
// that can itself be nested to any depth.
type Store interface {
	// Get decodes the value under key into out. It reports false when the
	// key is absent; out is left untouched in that case.
	Get(ctx context.Context, key string, out any) (bool, error)
	// Set encodes v as JSON and stores it under key.
	Set(ctx context.Context, key string, v any) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// GetAll returns every key of this namespace (not of nested ones).
	GetAll(ctx context.Context) (map[string]json.RawMessage, error)
	// Col returns the nested namespace called name.
	Col(name string) Store
	// Path is the slash-separated namespace path, "" for the root.
	Path() string
}
