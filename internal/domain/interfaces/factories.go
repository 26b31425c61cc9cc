package interfaces

import (
	"context"

	domaintypes "triad/internal/domain/types"
)

// MobileParams configures restore-or-create of the mobile session.
type MobileParams struct {
	Credentials domaintypes.Credentials
	Proxy       string
	Store       Store
	Env         domaintypes.EnvResolver
}

// WebParams configures restore-or-create of the web session.
type WebParams struct {
	Refresher       Refresher
	ForceAuthorized bool
	Store           Store
	Proxy           string
	Env             domaintypes.EnvResolver
}

// ClientParams configures restore-or-create of the desktop-client session.
type ClientParams struct {
	Refresher Refresher
	Store     Store
	Env       domaintypes.EnvResolver
}

// SessionFactories restores (or creates) each session kind against its
// storage namespace.
type SessionFactories interface {
	RestoreMobile(ctx context.Context, p MobileParams) (MobileSession, error)
	RestoreWeb(ctx context.Context, p WebParams) (WebSession, error)
	RestoreClient(ctx context.Context, p ClientParams) (ClientSession, error)
}
