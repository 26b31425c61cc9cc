package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"triad/internal/domain"
)

// documentFile is the per-namespace file name inside its directory.
const documentFile = "store.json"

// FileOption configures a File store.
type FileOption func(*fileRoot)

// WithPassphrase seals every namespace document with a key derived from
// passphrase (scrypt + XChaCha20-Poly1305).
func WithPassphrase(passphrase string) FileOption {
	return func(r *fileRoot) {
		if passphrase == "" {
			return
		}
		n, rr, p := scryptParamsDefault()
		r.sealer = newSealer(passphrase, n, rr, p)
	}
}

// WithScryptParams overrides the KDF cost used by WithPassphrase.
// It must be applied after WithPassphrase.
func WithScryptParams(n, r, p int) FileOption {
	return func(root *fileRoot) {
		if root.sealer != nil {
			root.sealer.n, root.sealer.r, root.sealer.p = n, r, p
		}
	}
}

type fileRoot struct {
	dir    string
	mu     sync.Mutex
	sealer *sealer
}

// File stores each namespace as a JSON document on disk. Namespace paths
// map onto nested directories under the root dir.
type File struct {
	root *fileRoot
	path string
}

// NewFile returns a File store rooted at dir.
func NewFile(dir string, opts ...FileOption) *File {
	root := &fileRoot{dir: dir}
	for _, opt := range opts {
		if opt != nil {
			opt(root)
		}
	}
	return &File{root: root}
}

func (f *File) file() string {
	parts := append([]string{f.root.dir}, strings.Split(f.path, "/")...)
	return filepath.Join(append(parts, documentFile)...)
}

// load reads the namespace document. Callers hold root.mu.
func (f *File) load() (map[string]json.RawMessage, error) {
	doc := make(map[string]json.RawMessage)
	b, err := readFile(f.file())
	if err != nil || b == nil {
		return doc, err
	}
	if f.root.sealer != nil {
		if b, err = f.root.sealer.open(b); err != nil {
			return nil, err
		}
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// save writes the namespace document. Callers hold root.mu.
func (f *File) save(doc map[string]json.RawMessage) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if f.root.sealer != nil {
		if b, err = f.root.sealer.seal(b); err != nil {
			return err
		}
	}
	return writeFile(f.file(), b, 0o600)
}

// Get decodes the value under key into out.
func (f *File) Get(ctx context.Context, key string, out any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := checkKey(key); err != nil {
		return false, err
	}
	f.root.mu.Lock()
	doc, err := f.load()
	f.root.mu.Unlock()
	if err != nil {
		return false, err
	}
	raw, ok := doc[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

// Set stores v under key.
func (f *File) Set(ctx context.Context, key string, v any) error {
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

	f.root.mu.Lock()
	defer f.root.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	doc[key] = raw
	return f.save(doc)
}

// Delete removes key.
func (f *File) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.root.mu.Lock()
	defer f.root.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return f.save(doc)
}

// GetAll returns every key of this namespace.
func (f *File) GetAll(ctx context.Context) (map[string]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.root.mu.Lock()
	defer f.root.mu.Unlock()
	return f.load()
}

// Col returns the nested namespace name.
func (f *File) Col(name string) domain.Store {
	return &File{root: f.root, path: joinPath(f.path, name)}
}

// Path returns the namespace path.
func (f *File) Path() string { return f.path }

// Close wipes key material held for sealed documents.
func (f *File) Close() error {
	if f.root.sealer != nil {
		f.root.sealer.wipe()
	}
	return nil
}

// Dir is the root directory of the store.
func (f *File) Dir() string { return f.root.dir }

// Exists reports whether this namespace has a document on disk.
func (f *File) Exists() bool {
	_, err := os.Stat(f.file())
	return err == nil
}

// Compile-time assertion that File implements domain.Store.
var _ domain.Store = (*File)(nil)
