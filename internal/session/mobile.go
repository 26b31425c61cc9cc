package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"triad/internal/domain"
	"triad/internal/guard"
)

// refreshSkew renews access tokens this long before they expire.
const refreshSkew = 30 * time.Second

// MobileOptions configures RestoreMobile.
type MobileOptions struct {
	Credentials domain.Credentials
	Proxy       string
	Store       domain.Store
	Env         domain.EnvResolver
	APIBase     string
	Log         *slog.Logger
	Now         func() time.Time
}

// Mobile is the mobile-app session. It logs in with the account credentials
// and owns the refresh capability shared with the other sessions.
type Mobile struct {
	*Base

	creds domain.Credentials
	now   func() time.Time

	mu      sync.Mutex
	tokens  domain.Tokens
	refresh singleflight.Group
}

// RestoreMobile restores the mobile session from opts.Store, logging in when
// no usable tokens are persisted.
func RestoreMobile(ctx context.Context, opts MobileOptions) (*Mobile, error) {
	return Restore(ctx, Spec[*Mobile]{
		Kind:  domain.KindMobile,
		Store: opts.Store,
		Env:   opts.Env,
		Build: func(ctx context.Context, env domain.Environment) (*Mobile, error) {
			base, err := newBase(domain.KindMobile, env, opts.Store, opts.Proxy, opts.APIBase, opts.Log)
			if err != nil {
				return nil, err
			}
			m := &Mobile{Base: base, creds: opts.Credentials, now: opts.Now}
			if m.now == nil {
				m.now = time.Now
			}

			restored, err := opts.Store.Get(ctx, stateKey, &m.tokens)
			if err != nil {
				return nil, err
			}
			if restored && m.tokens.RefreshToken != "" {
				m.log.Info("session.restore.tokens", "account_id", m.tokens.AccountID)
				return m, nil
			}
			if err := m.login(ctx); err != nil {
				return nil, err
			}
			return m, nil
		},
	})
}

func (m *Mobile) login(ctx context.Context) error {
	req := domain.LoginRequest{
		Login:    m.creds.Login,
		Password: m.creds.Password,
		DeviceID: m.env.Meta.DeviceID,
		Platform: m.env.Platform,
	}
	if m.creds.SharedSecret != "" {
		code, err := guard.Code(m.creds.SharedSecret, m.now())
		if err != nil {
			return err
		}
		req.TwoFactorCode = code
	}

	tokens, err := m.api.Login(ctx, req)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.tokens = tokens
	m.mu.Unlock()

	m.log.Info("session.login.ok", "account_id", tokens.AccountID)
	return m.ns.Set(ctx, stateKey, tokens)
}

// AccessToken returns a valid access token, refreshing it when it is missing
// or about to expire. Concurrent callers share one refresh. mu is never held
// across the network call, so request observers may read the session while a
// refresh is in flight; an observer that itself calls AccessToken during that
// refresh waits on it and never returns.
func (m *Mobile) AccessToken(ctx context.Context) (string, error) {
	if tok, ok := m.validToken(); ok {
		return tok, nil
	}
	v, err, _ := m.refresh.Do("refresh", func() (any, error) {
		return m.refreshTokens(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (m *Mobile) validToken() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens.AccessToken != "" && m.now().Add(refreshSkew).UnixMilli() < m.tokens.AccessExpires {
		return m.tokens.AccessToken, true
	}
	return "", false
}

func (m *Mobile) refreshTokens(ctx context.Context) (string, error) {
	// A caller that lost the race may arrive after the previous flight ended.
	if tok, ok := m.validToken(); ok {
		return tok, nil
	}

	m.mu.Lock()
	prev := m.tokens
	m.mu.Unlock()

	next, err := m.api.Refresh(ctx, prev.RefreshToken)
	if err != nil {
		return "", err
	}
	if next.RefreshToken == "" {
		next.RefreshToken = prev.RefreshToken
	}
	if next.AccountID == "" {
		next.AccountID = prev.AccountID
	}

	m.mu.Lock()
	m.tokens = next
	m.mu.Unlock()

	if err := m.ns.Set(ctx, stateKey, next); err != nil {
		return "", err
	}
	m.log.Debug("session.refresh.ok", "account_id", next.AccountID)
	return next.AccessToken, nil
}

// Refresher returns the refresh capability borrowed by the web and client
// sessions.
func (m *Mobile) Refresher() domain.Refresher { return m }

// AccountID is the remote account identifier, empty before login.
func (m *Mobile) AccountID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens.AccountID
}

// ConfirmationKey signs a confirmation action with the identity secret.
func (m *Mobile) ConfirmationKey(tag string) (string, error) {
	return guard.ConfirmationKey(m.creds.IdentitySecret, tag, m.now())
}

// Ping checks the current access token with the service.
func (m *Mobile) Ping(ctx context.Context) error { return m.ping(ctx, m.AccessToken) }

var _ domain.MobileSession = (*Mobile)(nil)
