package bootstrap

import (
	"context"
	"encoding/json"
	"log/slog"

	"triad/internal/domain"
	"triad/internal/events"
)

// PropertySync mirrors a web session's properties into a store namespace.
type PropertySync struct {
	sub      *events.Subscription
	hydrated int
}

// Cancel stops mirroring. Properties already written stay in storage.
func (p *PropertySync) Cancel() {
	if p != nil {
		p.sub.Cancel()
	}
}

// Hydrated is the number of properties loaded into the session at startup.
func (p *PropertySync) Hydrated() int { return p.hydrated }

// SyncProperties pushes every property stored in st into web, then
// subscribes to web's property changes and writes each one back to st.
// Hydration completes before the subscription is installed.
func SyncProperties(ctx context.Context, web domain.WebSession, st domain.Store, log *slog.Logger) (*PropertySync, error) {
	if log == nil {
		log = slog.Default()
	}

	saved, err := st.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for name, raw := range saved {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		web.SetProp(name, v)
	}

	writeCtx := context.WithoutCancel(ctx)
	sub := web.PropUpdated().Subscribe(func(c domain.PropChange) {
		if err := st.Set(writeCtx, c.Name, c.Value); err != nil {
			log.Error("bootstrap.props.write_failed", "prop", c.Name, "err", err)
		}
	})
	return &PropertySync{sub: sub, hydrated: len(saved)}, nil
}
