package interfaces

import (
	"context"

	domaintypes "triad/internal/domain/types"
	"triad/internal/events"
)

// Refresher hands out valid access tokens without a full login.
// It is owned by the mobile session and shared with the web and client ones.
type Refresher interface {
	AccessToken(ctx context.Context) (string, error)
}

// RequestSource is implemented by every session kind.
type RequestSource interface {
	Requests() *events.Stream[domaintypes.RequestArgs]
}

// MobileSession is the mobile-app session.
type MobileSession interface {
	RequestSource
	Refresher() Refresher
}

// WebSession is the web-browser session with its mirrored property map.
type WebSession interface {
	RequestSource
	Prop(name string) (any, bool)
	SetProp(name string, value any)
	PropUpdated() *events.Stream[domaintypes.PropChange]
}

// ClientSession is the desktop-client session.
type ClientSession interface {
	RequestSource
}
