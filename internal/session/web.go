package session

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"triad/internal/domain"
	"triad/internal/events"
)

// accessCookie carries the borrowed access token on web requests.
const accessCookie = "access_token"

// WebOptions configures RestoreWeb.
type WebOptions struct {
	Refresher       domain.Refresher
	ForceAuthorized bool
	Store           domain.Store
	Proxy           string
	Env             domain.EnvResolver
	APIBase         string
	Log             *slog.Logger
}

// Web is the web-browser session with a property map mirrored by callers.
type Web struct {
	*Base

	refresher domain.Refresher
	apiBase   string

	mu          sync.RWMutex
	props       map[string]any
	propUpdated events.Stream[domain.PropChange]
}

// RestoreWeb restores the web session. With ForceAuthorized it obtains an
// access token from the refresher before returning.
func RestoreWeb(ctx context.Context, opts WebOptions) (*Web, error) {
	return Restore(ctx, Spec[*Web]{
		Kind:  domain.KindWeb,
		Store: opts.Store,
		Env:   opts.Env,
		Build: func(ctx context.Context, env domain.Environment) (*Web, error) {
			base, err := newBase(domain.KindWeb, env, opts.Store, opts.Proxy, opts.APIBase, opts.Log)
			if err != nil {
				return nil, err
			}
			w := &Web{
				Base:      base,
				refresher: opts.Refresher,
				apiBase:   opts.APIBase,
				props:     make(map[string]any),
			}
			if opts.ForceAuthorized {
				if err := w.Authorize(ctx); err != nil {
					return nil, err
				}
			}
			return w, nil
		},
	})
}

// Authorize puts a fresh access token into the cookie jar.
func (w *Web) Authorize(ctx context.Context) error {
	tok, err := w.refresher.AccessToken(ctx)
	if err != nil {
		return err
	}
	u, err := url.Parse(w.apiBase)
	if err != nil {
		return err
	}
	w.jar.SetCookies(u, []*http.Cookie{{Name: accessCookie, Value: tok, Path: "/"}})
	return nil
}

// Prop returns a property value.
func (w *Web) Prop(name string) (any, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	v, ok := w.props[name]
	return v, ok
}

// Props returns a copy of the property map.
func (w *Web) Props() map[string]any {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make(map[string]any, len(w.props))
	for k, v := range w.props {
		out[k] = v
	}
	return out
}

// SetProp sets a property and announces it on PropUpdated.
func (w *Web) SetProp(name string, value any) {
	w.mu.Lock()
	w.props[name] = value
	w.mu.Unlock()

	w.propUpdated.Publish(domain.PropChange{Name: name, Value: value})
}

// PropUpdated is the property-change notification stream.
func (w *Web) PropUpdated() *events.Stream[domain.PropChange] { return &w.propUpdated }

// Ping checks a borrowed access token with the service.
func (w *Web) Ping(ctx context.Context) error { return w.ping(ctx, w.refresher.AccessToken) }

var _ domain.WebSession = (*Web)(nil)
