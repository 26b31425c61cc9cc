package session

import (
	"context"
	"log/slog"
	"time"

	"triad/internal/domain"
)

// Factories builds real sessions against the auth API at APIBase.
type Factories struct {
	APIBase string
	Log     *slog.Logger
	Now     func() time.Time
}

// RestoreMobile implements domain.SessionFactories.
func (f *Factories) RestoreMobile(ctx context.Context, p domain.MobileParams) (domain.MobileSession, error) {
	m, err := RestoreMobile(ctx, MobileOptions{
		Credentials: p.Credentials,
		Proxy:       p.Proxy,
		Store:       p.Store,
		Env:         p.Env,
		APIBase:     f.APIBase,
		Log:         f.Log,
		Now:         f.Now,
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RestoreWeb implements domain.SessionFactories.
func (f *Factories) RestoreWeb(ctx context.Context, p domain.WebParams) (domain.WebSession, error) {
	w, err := RestoreWeb(ctx, WebOptions{
		Refresher:       p.Refresher,
		ForceAuthorized: p.ForceAuthorized,
		Store:           p.Store,
		Proxy:           p.Proxy,
		Env:             p.Env,
		APIBase:         f.APIBase,
		Log:             f.Log,
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

// RestoreClient implements domain.SessionFactories.
func (f *Factories) RestoreClient(ctx context.Context, p domain.ClientParams) (domain.ClientSession, error) {
	c, err := RestoreClient(ctx, ClientOptions{
		Refresher: p.Refresher,
		Store:     p.Store,
		Env:       p.Env,
		APIBase:   f.APIBase,
		Log:       f.Log,
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

var _ domain.SessionFactories = (*Factories)(nil)
