package domain

import (
	interfaces "triad/internal/domain/interfaces"
	types "triad/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	SessionKind  = types.SessionKind
	Credentials  = types.Credentials
	LoginRequest = types.LoginRequest
	Tokens       = types.Tokens
	Environment  = types.Environment
	EnvMeta      = types.EnvMeta
	Viewport     = types.Viewport
	RequestArgs  = types.RequestArgs
	RequestOpts  = types.RequestOpts
	PropChange   = types.PropChange
	EnvResolver  = types.EnvResolver
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Store         = interfaces.Store
	Refresher     = interfaces.Refresher
	RequestSource = interfaces.RequestSource
	MobileSession = interfaces.MobileSession
	WebSession    = interfaces.WebSession
	ClientSession = interfaces.ClientSession
	Authenticator = interfaces.Authenticator

	MobileParams     = interfaces.MobileParams
	WebParams        = interfaces.WebParams
	ClientParams     = interfaces.ClientParams
	SessionFactories = interfaces.SessionFactories
)

// Session kinds, re-exported.
const (
	KindMobile = types.KindMobile
	KindWeb    = types.KindWeb
	KindClient = types.KindClient
)

// Kinds lists every session kind in construction order.
func Kinds() []SessionKind { return types.Kinds() }
