package session

import (
	"context"
	"encoding/base64"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"triad/internal/domain"
	"triad/internal/env"
	"triad/internal/remote"
	"triad/internal/store"
	"triad/internal/useragent"
)

func newAuthServer(t *testing.T) (*remote.DevServer, string) {
	t.Helper()
	dev := remote.NewDevServer(nil, map[string]string{"a": "b"})
	srv := httptest.NewServer(dev.Handler())
	t.Cleanup(srv.Close)
	return dev, srv.URL
}

func testGen() *env.Generator {
	return &env.Generator{
		Now:         time.Now,
		NewDeviceID: func() string { return "ios:test-device" },
		Agents:      useragent.Fixed{UserAgent: "Mozilla/5.0 fixed", ViewportWidth: 1200, ViewportHeight: 800},
	}
}

func TestRestore_PersistsOnlyWhenChanged(t *testing.T) {
	ctx := context.Background()
	ns := store.NewMemory().Col("sessions").Col("client")

	calls := 0
	spec := Spec[domain.Environment]{
		Kind:  domain.KindClient,
		Store: ns,
		Env:   testGen().Client(),
		Build: func(_ context.Context, e domain.Environment) (domain.Environment, error) {
			calls++
			return e, nil
		},
	}

	first, err := Restore(ctx, spec)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if first.Meta.Updated == 0 {
		t.Fatalf("expected regenerated record")
	}
	var stored domain.Environment
	if ok, _ := ns.Get(ctx, envKey, &stored); !ok || stored.Meta.Updated != first.Meta.Updated {
		t.Fatalf("stored=%+v", stored)
	}

	// Second restore reuses the persisted record.
	second, err := Restore(ctx, spec)
	if err != nil {
		t.Fatalf("restore again: %v", err)
	}
	if second.Meta.Updated != first.Meta.Updated || calls != 2 {
		t.Fatalf("second=%+v calls=%d", second, calls)
	}
}

func TestRestoreMobile_LoginThenRestore(t *testing.T) {
	ctx := context.Background()
	dev, api := newAuthServer(t)
	ns := store.NewMemory().Col("mobile")

	opts := MobileOptions{
		Credentials: domain.Credentials{
			Login:        "a",
			Password:     "b",
			SharedSecret: base64.StdEncoding.EncodeToString([]byte("shared-secret-bytes!")),
		},
		Store:   ns,
		Env:     testGen().Mobile(),
		APIBase: api,
	}

	m, err := RestoreMobile(ctx, opts)
	if err != nil {
		t.Fatalf("restore mobile: %v", err)
	}
	if m.AccountID() == "" {
		t.Fatalf("expected account id after login")
	}
	if m.Env().Meta.DeviceID != "ios:test-device" {
		t.Fatalf("deviceid=%q", m.Env().Meta.DeviceID)
	}

	var tokens domain.Tokens
	if ok, _ := ns.Get(ctx, stateKey, &tokens); !ok || tokens.RefreshToken == "" {
		t.Fatalf("tokens not persisted: %+v", tokens)
	}

	again, err := RestoreMobile(ctx, opts)
	if err != nil {
		t.Fatalf("restore mobile again: %v", err)
	}
	if again.AccountID() != m.AccountID() {
		t.Fatalf("account changed across restore")
	}
	if logins, _ := dev.Stats(); logins != 1 {
		t.Fatalf("logins=%d want=1", logins)
	}
}

func TestRestoreMobile_BadPasswordPropagates(t *testing.T) {
	_, api := newAuthServer(t)
	_, err := RestoreMobile(context.Background(), MobileOptions{
		Credentials: domain.Credentials{Login: "a", Password: "nope"},
		Store:       store.NewMemory(),
		Env:         testGen().Mobile(),
		APIBase:     api,
	})
	if err == nil {
		t.Fatalf("expected login failure")
	}
}

func TestMobile_AccessTokenRefreshes(t *testing.T) {
	ctx := context.Background()
	dev, api := newAuthServer(t)

	now := time.Now()
	m, err := RestoreMobile(ctx, MobileOptions{
		Credentials: domain.Credentials{Login: "a", Password: "b"},
		Store:       store.NewMemory(),
		Env:         testGen().Mobile(),
		APIBase:     api,
		Now:         func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	first, err := m.AccessToken(ctx)
	if err != nil || first == "" {
		t.Fatalf("access token: %q %v", first, err)
	}
	if _, refreshes := dev.Stats(); refreshes != 0 {
		t.Fatalf("unexpected refresh for valid token")
	}

	now = now.Add(time.Hour)
	second, err := m.AccessToken(ctx)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if second == first {
		t.Fatalf("expected a new access token")
	}
	if _, refreshes := dev.Stats(); refreshes != 1 {
		t.Fatalf("refreshes=%d want=1", refreshes)
	}
}

func TestMobile_ObserverReadsSessionDuringRefresh(t *testing.T) {
	ctx := context.Background()
	_, api := newAuthServer(t)

	now := time.Now()
	m, err := RestoreMobile(ctx, MobileOptions{
		Credentials: domain.Credentials{Login: "a", Password: "b"},
		Store:       store.NewMemory(),
		Env:         testGen().Mobile(),
		APIBase:     api,
		Now:         func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	want := m.AccountID()

	var (
		mu  sync.Mutex
		ids []string
	)
	sub := m.Requests().Subscribe(func(domain.RequestArgs) {
		id := m.AccountID()
		mu.Lock()
		ids = append(ids, id)
		mu.Unlock()
	})
	defer sub.Cancel()

	now = now.Add(time.Hour)
	done := make(chan error, 1)
	go func() {
		_, err := m.AccessToken(ctx)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("refresh: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("AccessToken blocked while an observer read the session")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(ids) != 1 || ids[0] != want {
		t.Fatalf("observer saw %v, want [%s]", ids, want)
	}
}

func TestMobile_ConcurrentAccessTokenSharesRefresh(t *testing.T) {
	ctx := context.Background()
	dev, api := newAuthServer(t)

	m, err := RestoreMobile(ctx, MobileOptions{
		Credentials: domain.Credentials{Login: "a", Password: "b"},
		Store:       store.NewMemory(),
		Env:         testGen().Mobile(),
		APIBase:     api,
	})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	m.mu.Lock()
	m.tokens.AccessExpires = 0
	m.mu.Unlock()

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.AccessToken(ctx); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("access token: %v", err)
	}
	// Late callers re-check the token inside the flight, so at most one
	// refresh reaches the server for a single expiry.
	if _, refreshes := dev.Stats(); refreshes != 1 {
		t.Fatalf("refreshes=%d want=1", refreshes)
	}
}

func TestRestoreWeb_AuthorizesAndPublishesRequests(t *testing.T) {
	ctx := context.Background()
	_, api := newAuthServer(t)
	root := store.NewMemory()

	m, err := RestoreMobile(ctx, MobileOptions{
		Credentials: domain.Credentials{Login: "a", Password: "b"},
		Store:       root.Col("mobile"),
		Env:         testGen().Mobile(),
		APIBase:     api,
	})
	if err != nil {
		t.Fatalf("mobile: %v", err)
	}

	w, err := RestoreWeb(ctx, WebOptions{
		Refresher:       m.Refresher(),
		ForceAuthorized: true,
		Store:           root.Col("web"),
		Env:             testGen().Web(),
		APIBase:         api,
	})
	if err != nil {
		t.Fatalf("web: %v", err)
	}

	u, _ := url.Parse(api)
	if cookies := w.Jar().Cookies(u); len(cookies) != 1 || cookies[0].Name != accessCookie {
		t.Fatalf("cookies=%v", cookies)
	}

	var (
		mu   sync.Mutex
		seen []domain.RequestArgs
	)
	w.Requests().Subscribe(func(a domain.RequestArgs) {
		mu.Lock()
		seen = append(seen, a)
		mu.Unlock()
	})
	if err := w.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 {
		t.Fatalf("requests=%d want=1", len(seen))
	}
	if seen[0].URL.Path != "/ping" || seen[0].Opts.Header.Get("User-Agent") != "Mozilla/5.0 fixed" {
		t.Fatalf("request=%+v", seen[0])
	}
	if seen[0].Jar != w.Jar() {
		t.Fatalf("jar not passed through")
	}
}

func TestWeb_Props(t *testing.T) {
	ctx := context.Background()
	w, err := RestoreWeb(ctx, WebOptions{Store: store.NewMemory(), Env: testGen().Web()})
	if err != nil {
		t.Fatalf("web: %v", err)
	}

	var changes []domain.PropChange
	w.PropUpdated().Subscribe(func(c domain.PropChange) { changes = append(changes, c) })

	w.SetProp("language", "english")
	if v, ok := w.Prop("language"); !ok || v != "english" {
		t.Fatalf("prop=%v ok=%v", v, ok)
	}
	if len(changes) != 1 || changes[0].Name != "language" {
		t.Fatalf("changes=%v", changes)
	}
	if len(w.Props()) != 1 {
		t.Fatalf("props=%v", w.Props())
	}
}

func TestNewBase_BadProxy(t *testing.T) {
	_, err := RestoreWeb(context.Background(), WebOptions{
		Store: store.NewMemory(),
		Env:   testGen().Web(),
		Proxy: "http://[::1",
	})
	if err == nil {
		t.Fatalf("expected proxy parse error")
	}
}
