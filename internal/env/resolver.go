package env

import (
	"time"

	"triad/internal/domain"
	"triad/internal/useragent"
)

// Resolver maps the persisted record (zero value when absent) to the record
// a session should use.
type Resolver = domain.EnvResolver

// Generator holds the randomness and clock the resolvers draw on.
type Generator struct {
	Now         func() time.Time
	NewDeviceID func() string
	Agents      useragent.Source
}

// NewGenerator returns a Generator backed by the wall clock, random device
// ids and randomly chosen desktop agents.
func NewGenerator() *Generator {
	return &Generator{
		Now:         time.Now,
		NewDeviceID: RandomDeviceID,
		Agents:      useragent.NewRandom(0),
	}
}

func (g *Generator) now() time.Time {
	if g == nil || g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

// Fresh reports whether e passes the freshness test for kind.
func Fresh(kind domain.SessionKind, e domain.Environment) bool {
	if e.Meta.Updated == 0 {
		return false
	}
	if kind == domain.KindWeb {
		return e.Meta.Viewport != nil
	}
	return true
}

// Mobile keeps a fresh record and otherwise swaps in MobileIOS. Device-id
// backfill runs regardless of freshness: a record without a device id gets
// one and a new Updated stamp, with every other field preserved.
func (g *Generator) Mobile() Resolver {
	return func(old domain.Environment) domain.Environment {
		e := old.Clone()
		if !Fresh(domain.KindMobile, e) {
			e = MobileIOS(g.now())
		}
		if e.Meta.DeviceID == "" {
			newID := RandomDeviceID
			if g.NewDeviceID != nil {
				newID = g.NewDeviceID
			}
			e.Meta.DeviceID = newID()
			e.Meta.Updated = millis(g.now())
		}
		return e
	}
}

// Web keeps a record only when it has both an Updated stamp and a viewport.
// Otherwise the whole record is discarded for a new desktop browser whose
// viewport comes from the generated agent.
func (g *Generator) Web() Resolver {
	return func(old domain.Environment) domain.Environment {
		if Fresh(domain.KindWeb, old) {
			return old
		}
		var agents useragent.Source = useragent.NewRandom(0)
		if g.Agents != nil {
			agents = g.Agents
		}
		ua := agents.Desktop()
		e := WebBrowser(ua.String(), g.now())
		e.Meta.Viewport = &domain.Viewport{Width: ua.ViewportWidth, Height: ua.ViewportHeight}
		return e
	}
}

// Client keeps a record with an Updated stamp and otherwise swaps in
// ClientDesktop.
func (g *Generator) Client() Resolver {
	return func(old domain.Environment) domain.Environment {
		if Fresh(domain.KindClient, old) {
			return old
		}
		return ClientDesktop(g.now())
	}
}

// For returns the resolver for kind.
func (g *Generator) For(kind domain.SessionKind) Resolver {
	switch kind {
	case domain.KindMobile:
		return g.Mobile()
	case domain.KindWeb:
		return g.Web()
	default:
		return g.Client()
	}
}
