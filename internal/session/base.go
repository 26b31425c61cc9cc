package session

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"triad/internal/domain"
	"triad/internal/events"
	"triad/internal/remote"
)

// Base is the plumbing shared by every session kind.
type Base struct {
	kind domain.SessionKind
	env  domain.Environment
	ns   domain.Store
	log  *slog.Logger

	jar      *cookiejar.Jar
	client   *http.Client
	api      *remote.Client
	requests events.Stream[domain.RequestArgs]
}

func newBase(kind domain.SessionKind, env domain.Environment, ns domain.Store, proxy, apiBase string, log *slog.Logger) (*Base, error) {
	if log == nil {
		log = slog.Default()
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxy != "" {
		u, err := url.Parse(proxy)
		if err != nil {
			return nil, err
		}
		transport.Proxy = http.ProxyURL(u)
	}

	b := &Base{
		kind: kind,
		env:  env,
		ns:   ns,
		log:  log.With("session", string(kind)),
		jar:  jar,
	}
	b.client = &http.Client{
		Jar:       jar,
		Transport: &hookTransport{base: b, next: transport},
	}
	b.api = remote.NewHTTP(apiBase, b.client)
	return b, nil
}

// Kind returns the session kind.
func (b *Base) Kind() domain.SessionKind { return b.kind }

// Env returns the environment record the session was built with.
func (b *Base) Env() domain.Environment { return b.env.Clone() }

// Requests is the outgoing-request notification stream.
func (b *Base) Requests() *events.Stream[domain.RequestArgs] { return &b.requests }

// HTTPClient returns the session's client; requests made through it are
// published on Requests.
func (b *Base) HTTPClient() *http.Client { return b.client }

// Jar returns the session's cookie jar.
func (b *Base) Jar() http.CookieJar { return b.jar }

func (b *Base) ping(ctx context.Context, token func(context.Context) (string, error)) error {
	tok, err := token(ctx)
	if err != nil {
		return err
	}
	return b.api.Ping(ctx, tok)
}

// hookTransport stamps environment headers on each request and publishes it
// before handing it to the next RoundTripper.
type hookTransport struct {
	base *Base
	next http.RoundTripper
}

func (t *hookTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	env := t.base.env
	req = req.Clone(req.Context())
	if env.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", env.UserAgent)
	}
	for k, v := range env.Headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}

	u := *req.URL
	t.base.requests.Publish(domain.RequestArgs{
		URL:  &u,
		Opts: domain.RequestOpts{Method: req.Method, Header: req.Header.Clone()},
		Jar:  t.base.jar,
	})
	return t.next.RoundTrip(req)
}
