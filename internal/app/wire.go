package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"triad/internal/domain"
	"triad/internal/env"
	"triad/internal/session"
	"triad/internal/store"
)

// Wire bundles the store backend, session factories and helpers for the CLI.
type Wire struct {
	Root      domain.Store // backend root
	Account   domain.Store // Root.Col(cfg.Account)
	Factories *session.Factories
	Env       *env.Generator
	Log       *slog.Logger

	closers []func()
	closed  bool
}

// NewWire constructs the dependency graph from cfg.
func NewWire(ctx context.Context, cfg Config, log *slog.Logger) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}

	w := &Wire{
		Factories: &session.Factories{APIBase: cfg.APIURL, Log: log},
		Env:       env.NewGenerator(),
		Log:       log,
	}

	switch cfg.Store {
	case StoreMemory:
		w.Root = store.NewMemory()
	case StoreFile:
		var opts []store.FileOption
		if cfg.Passphrase != "" {
			opts = append(opts, store.WithPassphrase(cfg.Passphrase))
		}
		fs := store.NewFile(filepath.Join(cfg.Home, "store"), opts...)
		w.closers = append(w.closers, func() { _ = fs.Close() })
		w.Root = fs
	case StorePostgres:
		pool, err := NewDBPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		w.closers = append(w.closers, pool.Close)
		pg, err := newPostgresStore(ctx, pool, cfg.DBSchema)
		if err != nil {
			w.Close()
			return nil, err
		}
		w.Root = pg
	}

	w.Account = w.Root.Col(cfg.Account)
	log.Debug("wire ready", "store", cfg.Store, "account", cfg.Account, "api", cfg.APIURL)
	return w, nil
}

func newPostgresStore(ctx context.Context, pool *pgxpool.Pool, schema string) (*store.Postgres, error) {
	pg, err := store.NewPostgres(pool, store.WithSchema(schema))
	if err != nil {
		return nil, err
	}
	if err := pg.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return pg, nil
}

// Close releases backend resources in reverse order. It is safe to call
// more than once.
func (w *Wire) Close() {
	for i := len(w.closers) - 1; i >= 0; i-- {
		w.closers[i]()
	}
	w.closers = nil
	w.closed = true
}

// Closed reports whether Close has run.
func (w *Wire) Closed() bool { return w.closed }
