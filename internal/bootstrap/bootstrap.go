package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"triad/internal/credentials"
	"triad/internal/domain"
	"triad/internal/env"
)

// Storage namespaces under the account root.
const (
	SessionsCol = "sessions"
	PropsCol    = "props"
)

// ErrInvalidOptions is returned by Start when Store or Factories is nil.
var ErrInvalidOptions = errors.New("bootstrap: store and factories are required")

// Options are the inputs of Start. Store and Factories are required.
type Options struct {
	Store       domain.Store
	Proxy       string
	Credentials *domain.Credentials

	Factories domain.SessionFactories
	Env       *env.Generator
	Log       *slog.Logger
}

// Result is a fully bootstrapped account.
type Result struct {
	Store  domain.Store
	Mobile domain.MobileSession
	Web    domain.WebSession
	Client domain.ClientSession

	Helpers Helpers

	// Props is the web property mirror; it stays active for the life of
	// the process unless cancelled.
	Props *PropertySync
}

// Start restores the mobile, web and client sessions for the account rooted
// at opts.Store.
func Start(ctx context.Context, opts Options) (*Result, error) {
	if opts.Store == nil || opts.Factories == nil {
		return nil, ErrInvalidOptions
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	gen := opts.Env
	if gen == nil {
		gen = env.NewGenerator()
	}

	creds, err := credentials.Resolve(ctx, opts.Store, opts.Credentials)
	if err != nil {
		return nil, err
	}
	log = log.With("login", creds.Login)

	sessions := opts.Store.Col(SessionsCol)

	mobile, err := opts.Factories.RestoreMobile(ctx, domain.MobileParams{
		Credentials: creds,
		Proxy:       opts.Proxy,
		Store:       sessions.Col(string(domain.KindMobile)),
		Env:         gen.Mobile(),
	})
	if err != nil {
		return nil, err
	}
	log.Debug("bootstrap.session.ready", "session", domain.KindMobile)

	web, err := opts.Factories.RestoreWeb(ctx, domain.WebParams{
		Refresher:       mobile.Refresher(),
		ForceAuthorized: true,
		Store:           sessions.Col(string(domain.KindWeb)),
		Proxy:           opts.Proxy,
		Env:             gen.Web(),
	})
	if err != nil {
		return nil, err
	}
	log.Debug("bootstrap.session.ready", "session", domain.KindWeb)

	client, err := opts.Factories.RestoreClient(ctx, domain.ClientParams{
		Refresher: mobile.Refresher(),
		Store:     sessions.Col(string(domain.KindClient)),
		Env:       gen.Client(),
	})
	if err != nil {
		return nil, err
	}
	log.Debug("bootstrap.session.ready", "session", domain.KindClient)

	props, err := SyncProperties(ctx, web, opts.Store.Col(PropsCol), log)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Store:  opts.Store,
		Mobile: mobile,
		Web:    web,
		Client: client,
		Props:  props,
	}
	res.Helpers = Helpers{login: creds.Login, res: res}

	log.Info("bootstrap.done", "props", props.Hydrated())
	return res, nil
}
