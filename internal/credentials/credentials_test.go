package credentials_test

import (
	"context"
	"errors"
	"testing"

	"triad/internal/credentials"
	"triad/internal/domain"
	"triad/internal/store"
)

func TestResolve_ExplicitUsedAsIs(t *testing.T) {
	st := store.NewMemory()
	_ = st.Set(context.Background(), credentials.StoreKey, []string{"stored", "stored-pw"})

	cases := []domain.Credentials{
		{Login: "a", Password: "b"},
		{Login: "user", Password: "pw", SharedSecret: "c2hhcmVk", IdentitySecret: "aWQ="},
	}
	for _, in := range cases {
		in := in
		got, err := credentials.Resolve(context.Background(), st, &in)
		if err != nil {
			t.Fatalf("resolve %+v: %v", in, err)
		}
		if got != in {
			t.Fatalf("got=%+v want=%+v", got, in)
		}
	}
}

func TestResolve_FromStoreTuple(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()
	if err := st.Set(ctx, credentials.StoreKey, []string{"alice", "pw", "shared", "identity"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := credentials.Resolve(ctx, st, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := domain.Credentials{Login: "alice", Password: "pw", SharedSecret: "shared", IdentitySecret: "identity"}
	if got != want {
		t.Fatalf("got=%+v want=%+v", got, want)
	}
}

func TestResolve_ShortTupleFillsEmpty(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()
	_ = st.Set(ctx, credentials.StoreKey, []any{"bob", "pw", nil})

	got, err := credentials.Resolve(ctx, st, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.SharedSecret != "" || got.IdentitySecret != "" || got.Login != "bob" {
		t.Fatalf("got=%+v", got)
	}
}

func TestResolve_Missing(t *testing.T) {
	cases := []struct {
		name     string
		explicit *domain.Credentials
		stored   any
		login    bool
		password bool
	}{
		{name: "nothing stored", login: true, password: true},
		{name: "explicit empty login", explicit: &domain.Credentials{Password: "b"}, login: true},
		{name: "explicit empty password", explicit: &domain.Credentials{Login: "a"}, password: true},
		{name: "stored without password", stored: []string{"a"}, password: true},
		{name: "explicit ignores store", explicit: &domain.Credentials{}, stored: []string{"a", "b"}, login: true, password: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := store.NewMemory()
			if tc.stored != nil {
				_ = st.Set(context.Background(), credentials.StoreKey, tc.stored)
			}

			_, err := credentials.Resolve(context.Background(), st, tc.explicit)
			if !errors.Is(err, credentials.ErrMissingCredentials) {
				t.Fatalf("err=%v want ErrMissingCredentials", err)
			}
			var mce *credentials.MissingCredentialsError
			if !errors.As(err, &mce) {
				t.Fatalf("expected *MissingCredentialsError, got %T", err)
			}
			if mce.Login != tc.login || mce.Password != tc.password {
				t.Fatalf("missing login=%v password=%v", mce.Login, mce.Password)
			}
		})
	}
}

func TestSave_WritesTuple(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()
	c := domain.Credentials{Login: "a", Password: "b", SharedSecret: "s", IdentitySecret: "i"}
	if err := credentials.Save(ctx, st, c); err != nil {
		t.Fatalf("save: %v", err)
	}

	var tuple []string
	if ok, err := st.Get(ctx, credentials.StoreKey, &tuple); !ok || err != nil {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(tuple) != 4 || tuple[0] != "a" || tuple[3] != "i" {
		t.Fatalf("tuple=%v", tuple)
	}

	if err := credentials.Save(ctx, st, domain.Credentials{Login: "a"}); err == nil {
		t.Fatalf("expected validation error")
	}
}
