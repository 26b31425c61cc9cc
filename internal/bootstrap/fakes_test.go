package bootstrap_test

import (
	"context"
	"errors"
	"sync"

	"triad/internal/domain"
	"triad/internal/events"
)

type fakeRefresher struct{}

func (fakeRefresher) AccessToken(context.Context) (string, error) { return "token", nil }

type fakeSession struct {
	requests events.Stream[domain.RequestArgs]

	mu          sync.Mutex
	props       map[string]any
	propUpdated events.Stream[domain.PropChange]
}

func newFakeSession() *fakeSession { return &fakeSession{props: make(map[string]any)} }

func (s *fakeSession) Requests() *events.Stream[domain.RequestArgs] { return &s.requests }
func (s *fakeSession) Refresher() domain.Refresher                  { return fakeRefresher{} }

func (s *fakeSession) Prop(name string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.props[name]
	return v, ok
}

func (s *fakeSession) SetProp(name string, value any) {
	s.mu.Lock()
	s.props[name] = value
	s.mu.Unlock()
	s.propUpdated.Publish(domain.PropChange{Name: name, Value: value})
}

func (s *fakeSession) PropUpdated() *events.Stream[domain.PropChange] { return &s.propUpdated }

// fakeFactories records the begin/end of every restore call.
type fakeFactories struct {
	mu    sync.Mutex
	calls []string
	fail  domain.SessionKind

	mobile, web, client *fakeSession
	webParams           domain.WebParams
	clientParams        domain.ClientParams
	mobileParams        domain.MobileParams
}

var errRestore = errors.New("restore failed")

func newFakeFactories() *fakeFactories {
	return &fakeFactories{mobile: newFakeSession(), web: newFakeSession(), client: newFakeSession()}
}

func (f *fakeFactories) record(s string) {
	f.mu.Lock()
	f.calls = append(f.calls, s)
	f.mu.Unlock()
}

func (f *fakeFactories) RestoreMobile(ctx context.Context, p domain.MobileParams) (domain.MobileSession, error) {
	f.record("mobile:begin")
	defer f.record("mobile:end")
	f.mobileParams = p
	if err := touchEnv(ctx, p.Store, p.Env); err != nil {
		return nil, err
	}
	if f.fail == domain.KindMobile {
		return nil, errRestore
	}
	return f.mobile, nil
}

func (f *fakeFactories) RestoreWeb(ctx context.Context, p domain.WebParams) (domain.WebSession, error) {
	f.record("web:begin")
	defer f.record("web:end")
	f.webParams = p
	if err := touchEnv(ctx, p.Store, p.Env); err != nil {
		return nil, err
	}
	if f.fail == domain.KindWeb {
		return nil, errRestore
	}
	return f.web, nil
}

func (f *fakeFactories) RestoreClient(ctx context.Context, p domain.ClientParams) (domain.ClientSession, error) {
	f.record("client:begin")
	defer f.record("client:end")
	f.clientParams = p
	if err := touchEnv(ctx, p.Store, p.Env); err != nil {
		return nil, err
	}
	if f.fail == domain.KindClient {
		return nil, errRestore
	}
	return f.client, nil
}

func touchEnv(ctx context.Context, st domain.Store, resolve domain.EnvResolver) error {
	var old domain.Environment
	if _, err := st.Get(ctx, "env", &old); err != nil {
		return err
	}
	return st.Set(ctx, "env", resolve(old))
}

// recordingStore logs every namespace opened below it.
type recordingStore struct {
	domain.Store
	opened *[]string
}

func (r recordingStore) Col(name string) domain.Store {
	child := r.Store.Col(name)
	*r.opened = append(*r.opened, child.Path())
	return recordingStore{Store: child, opened: r.opened}
}
