package store

import (
	"context"
	"crypto/rand"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

// Integration tests are enabled when TRIAD_TEST_DATABASE_URL is set.

func TestPostgres_GetSetNamespaces(t *testing.T) {
	pool := mustOpenTestPool(t)
	defer pool.Close()

	schema := "triad_kv_it_" + strings.ToLower(ulid.MustNew(ulid.Now(), rand.Reader).String())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, _ = pool.Exec(ctx, `DROP SCHEMA IF EXISTS `+pgx.Identifier{schema}.Sanitize()+` CASCADE`)
	})

	st, err := NewPostgres(pool, WithSchema(schema))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	if err := st.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	props := st.Col("props")
	if err := props.Set(ctx, "language", "english"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := props.Set(ctx, "language", "german"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	var got string
	ok, err := props.Get(ctx, "language", &got)
	if err != nil || !ok || got != "german" {
		t.Fatalf("get: ok=%v err=%v got=%q", ok, err, got)
	}
	if ok, _ := st.Get(ctx, "language", &got); ok {
		t.Fatalf("root namespace sees nested key")
	}

	all, err := props.GetAll(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("getall: %v %v", all, err)
	}
	if err := props.Delete(ctx, "language"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestNewPostgres_RequiresPool(t *testing.T) {
	if _, err := NewPostgres(nil); err != ErrInvalidInput {
		t.Fatalf("err=%v want=ErrInvalidInput", err)
	}
}

func mustOpenTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	raw := strings.TrimSpace(os.Getenv("TRIAD_TEST_DATABASE_URL"))
	if raw == "" {
		t.Skip("integration test skipped: TRIAD_TEST_DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, raw)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	c, err := pool.Acquire(ctx)
	if err != nil {
		pool.Close()
		t.Skipf("integration test skipped: Postgres unreachable: %v", err)
	}
	c.Release()
	return pool
}
