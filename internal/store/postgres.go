package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"triad/internal/domain"
)

var (
	// ErrInvalidInput is returned when the Postgres store is misconfigured.
	ErrInvalidInput = errors.New("store: invalid input")
)

// PostgresOption configures a Postgres store.
type PostgresOption func(*Postgres) error

// WithSchema sets the DB schema used by the store (default: "triad").
func WithSchema(schema string) PostgresOption {
	return func(s *Postgres) error {
		schema = strings.TrimSpace(schema)
		if schema == "" {
			return ErrInvalidInput
		}
		s.schema = schema
		return nil
	}
}

// Postgres persists namespaces in a single kv table.
type Postgres struct {
	pool   *pgxpool.Pool
	schema string
	path   string
}

// NewPostgres constructs a Postgres store.
func NewPostgres(pool *pgxpool.Pool, opts ...PostgresOption) (*Postgres, error) {
	st := &Postgres{pool: pool, schema: "triad"}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(st); err != nil {
			return nil, err
		}
	}
	if st.pool == nil {
		return nil, ErrInvalidInput
	}
	return st, nil
}

// EnsureSchema creates the schema and kv table when missing.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	kv := pgIdent(s.schema, "kv")
	sql := fmt.Sprintf(`
CREATE SCHEMA IF NOT EXISTS %s;

CREATE TABLE IF NOT EXISTS %s (
  namespace TEXT NOT NULL,
  key TEXT NOT NULL,
  value JSONB NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (namespace, key)
);`, pgx.Identifier{s.schema}.Sanitize(), kv)

	_, err := s.pool.Exec(ctx, sql)
	return err
}

// Get decodes the value under key into out.
func (s *Postgres) Get(ctx context.Context, key string, out any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := checkKey(key); err != nil {
		return false, err
	}

	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM `+pgIdent(s.schema, "kv")+` WHERE namespace = $1 AND key = $2`,
		s.path, key,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(raw, out)
}

// Set stores v under key.
func (s *Postgres) Set(ctx context.Context, key string, v any) error {
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

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+pgIdent(s.schema, "kv")+` (namespace, key, value, updated_at)
		   VALUES ($1, $2, $3::jsonb, now())
		 ON CONFLICT (namespace, key)
		   DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		s.path, key, string(raw),
	)
	return err
}

// Delete removes key.
func (s *Postgres) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx,
		`DELETE FROM `+pgIdent(s.schema, "kv")+` WHERE namespace = $1 AND key = $2`,
		s.path, key,
	)
	return err
}

// GetAll returns every key of this namespace.
func (s *Postgres) GetAll(ctx context.Context) (map[string]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx,
		`SELECT key, value FROM `+pgIdent(s.schema, "kv")+` WHERE namespace = $1`,
		s.path,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]json.RawMessage)
	for rows.Next() {
		var (
			key string
			raw []byte
		)
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, err
		}
		out[key] = json.RawMessage(raw)
	}
	return out, rows.Err()
}

// Col returns the nested namespace name.
func (s *Postgres) Col(name string) domain.Store {
	return &Postgres{pool: s.pool, schema: s.schema, path: joinPath(s.path, name)}
}

// Path returns the namespace path.
func (s *Postgres) Path() string { return s.path }

func pgIdent(schema, table string) string {
	return pgx.Identifier{schema, table}.Sanitize()
}

// Compile-time assertion that Postgres implements domain.Store.
var _ domain.Store = (*Postgres)(nil)
