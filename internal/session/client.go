package session

import (
	"context"
	"log/slog"

	"triad/internal/domain"
)

// ClientOptions configures RestoreClient.
type ClientOptions struct {
	Refresher domain.Refresher
	Store     domain.Store
	Env       domain.EnvResolver
	APIBase   string
	Log       *slog.Logger
}

// Client is the desktop-client session.
type Client struct {
	*Base
	refresher domain.Refresher
}

// RestoreClient restores the desktop-client session. It carries no proxy.
func RestoreClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	return Restore(ctx, Spec[*Client]{
		Kind:  domain.KindClient,
		Store: opts.Store,
		Env:   opts.Env,
		Build: func(ctx context.Context, env domain.Environment) (*Client, error) {
			base, err := newBase(domain.KindClient, env, opts.Store, "", opts.APIBase, opts.Log)
			if err != nil {
				return nil, err
			}
			return &Client{Base: base, refresher: opts.Refresher}, nil
		},
	})
}

// Ping checks a borrowed access token with the service.
func (c *Client) Ping(ctx context.Context) error { return c.ping(ctx, c.refresher.AccessToken) }

var _ domain.ClientSession = (*Client)(nil)
